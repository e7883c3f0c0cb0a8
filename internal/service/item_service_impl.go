package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/repository"
	"github.com/google/uuid"
)

type itemService struct {
	items repository.PlanItemRepo
}

func NewItemService(items repository.PlanItemRepo) ItemService {
	return &itemService{items: items}
}

func (s *itemService) Create(ctx context.Context, it *domain.PlanItem) error {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	if it.DurationDays < 0 {
		return fmt.Errorf("duration must be >= 0 days, got %d", it.DurationDays)
	}
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now

	// SortOrder 0 means "append": place after the current last item.
	if it.SortOrder == 0 {
		existing, err := s.items.ListByPlan(ctx, it.PlanID)
		if err != nil {
			return err
		}
		max := 0
		for _, e := range existing {
			if e.SortOrder > max {
				max = e.SortOrder
			}
		}
		it.SortOrder = max + 1
	}
	return s.items.Create(ctx, it)
}

func (s *itemService) GetByID(ctx context.Context, id string) (*domain.PlanItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemService) ListByPlan(ctx context.Context, planID string) ([]*domain.PlanItem, error) {
	return s.items.ListByPlan(ctx, planID)
}

func (s *itemService) Update(ctx context.Context, it *domain.PlanItem) error {
	if it.DurationDays < 0 {
		return fmt.Errorf("duration must be >= 0 days, got %d", it.DurationDays)
	}
	it.UpdatedAt = time.Now().UTC()
	return s.items.Update(ctx, it)
}

func (s *itemService) Pin(ctx context.Context, id string, start time.Time) error {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	it.Pinned = true
	it.StartDate = &start
	it.UpdatedAt = time.Now().UTC()
	return s.items.Update(ctx, it)
}

func (s *itemService) Unpin(ctx context.Context, id string) error {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	it.Pinned = false
	it.UpdatedAt = time.Now().UTC()
	return s.items.Update(ctx, it)
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}
