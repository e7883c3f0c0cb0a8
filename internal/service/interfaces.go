package service

import (
	"context"
	"time"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/importer"
)

type PlanService interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)

	// Resolve accepts either a short ID or a full UUID.
	Resolve(ctx context.Context, ref string) (*domain.Plan, error)

	List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ItemService interface {
	Create(ctx context.Context, it *domain.PlanItem) error
	GetByID(ctx context.Context, id string) (*domain.PlanItem, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.PlanItem, error)
	Update(ctx context.Context, it *domain.PlanItem) error
	Pin(ctx context.Context, id string, start time.Time) error
	Unpin(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// LinkService covers both the bulk board operations and single-edge edits.
// Every mutation revalidates against the full plan graph and recomputes
// dates before anything is persisted.
type LinkService interface {
	contract.LinkUseCase

	AddEdge(ctx context.Context, planID string, e domain.PredecessorEdge, dryRun bool) (*contract.LinkResponse, error)
	RemoveEdge(ctx context.Context, planID, itemID, predecessorID string, dryRun bool) (*contract.LinkResponse, error)
	ListEdges(ctx context.Context, planID string) ([]domain.PredecessorEdge, error)
}

type ScheduleService interface {
	contract.ScheduleUseCase
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Plan      *domain.Plan
	ItemCount int
	EdgeCount int
}

type ImportService interface {
	ImportPlan(ctx context.Context, filePath string) (*ImportResult, error)
	ImportPlanFromSchema(ctx context.Context, schema *importer.PlanSchema) (*ImportResult, error)
	ExportPlan(ctx context.Context, planID string) (*importer.PlanSchema, error)
}
