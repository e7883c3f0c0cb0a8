package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/telos/internal/domain"
)

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Plan, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
}

type PlanItemRepo interface {
	Create(ctx context.Context, it *domain.PlanItem) error
	GetByID(ctx context.Context, id string) (*domain.PlanItem, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.PlanItem, error)
	Update(ctx context.Context, it *domain.PlanItem) error

	// UpdateDates writes only the derived date fields. It fails if the item
	// no longer exists, which is how the mutation applier detects concurrent
	// deletes.
	UpdateDates(ctx context.Context, id string, start, finish *time.Time, updatedAt time.Time) error

	Delete(ctx context.Context, id string) error
}

type EdgeRepo interface {
	Create(ctx context.Context, e *domain.PredecessorEdge) error
	Delete(ctx context.Context, itemID, predecessorID string) error
	ListByPlan(ctx context.Context, planID string) ([]domain.PredecessorEdge, error)
	ListPredecessors(ctx context.Context, itemID string) ([]domain.PredecessorEdge, error)
	ListDependents(ctx context.Context, itemID string) ([]domain.PredecessorEdge, error)
}
