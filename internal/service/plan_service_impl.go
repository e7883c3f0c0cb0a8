package service

import (
	"context"
	"time"

	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	plans repository.PlanRepo
}

func NewPlanService(plans repository.PlanRepo) PlanService {
	return &planService{plans: plans}
}

func (s *planService) Create(ctx context.Context, p *domain.Plan) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.ShortID != "" {
		if err := p.ValidateShortID(); err != nil {
			return err
		}
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.PlanActive
	}
	if p.StartDate.IsZero() {
		p.StartDate = now.Truncate(24 * time.Hour)
	}
	return s.plans.Create(ctx, p)
}

func (s *planService) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) Resolve(ctx context.Context, ref string) (*domain.Plan, error) {
	if p, err := s.plans.GetByShortID(ctx, ref); err == nil {
		return p, nil
	}
	return s.plans.GetByID(ctx, ref)
}

func (s *planService) List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error) {
	return s.plans.List(ctx, includeArchived)
}

func (s *planService) Update(ctx context.Context, p *domain.Plan) error {
	if p.ShortID != "" {
		if err := p.ValidateShortID(); err != nil {
			return err
		}
	}
	p.UpdatedAt = time.Now().UTC()
	return s.plans.Update(ctx, p)
}

func (s *planService) Archive(ctx context.Context, id string) error {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	p.Status = domain.PlanArchived
	p.ArchivedAt = &now
	p.UpdatedAt = now
	return s.plans.Update(ctx, p)
}

func (s *planService) Unarchive(ctx context.Context, id string) error {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Status = domain.PlanActive
	p.ArchivedAt = nil
	p.UpdatedAt = time.Now().UTC()
	return s.plans.Update(ctx, p)
}

func (s *planService) Delete(ctx context.Context, id string) error {
	return s.plans.Delete(ctx, id)
}
