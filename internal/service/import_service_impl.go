package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/telos/internal/db"
	"github.com/alexanderramin/telos/internal/importer"
	"github.com/alexanderramin/telos/internal/repository"
)

type importService struct {
	plans repository.PlanRepo
	items repository.PlanItemRepo
	edges repository.EdgeRepo
	uow   db.UnitOfWork
}

func NewImportService(
	plans repository.PlanRepo,
	items repository.PlanItemRepo,
	edges repository.EdgeRepo,
	uow db.UnitOfWork,
) ImportService {
	return &importService{plans: plans, items: items, edges: edges, uow: uow}
}

func (s *importService) ImportPlan(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadPlanSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportPlanFromSchema(ctx context.Context, schema *importer.PlanSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

// importSchema persists the whole plan atomically: a failed item or edge
// insert rolls everything back, unlike the board operations which apply
// edge by edge.
func (s *importService) importSchema(ctx context.Context, schema *importer.PlanSchema) (*ImportResult, error) {
	if errs := importer.ValidatePlanSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		txItems := repository.NewSQLitePlanItemRepo(tx)
		txEdges := repository.NewSQLiteEdgeRepo(tx)

		if err := txPlans.Create(ctx, generated.Plan); err != nil {
			return fmt.Errorf("creating plan: %w", err)
		}
		for _, it := range generated.Items {
			if err := txItems.Create(ctx, it); err != nil {
				return fmt.Errorf("creating item %q: %w", it.Title, err)
			}
		}
		for _, e := range generated.Edges {
			if err := txEdges.Create(ctx, &e); err != nil {
				return fmt.Errorf("creating edge: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Plan:      generated.Plan,
		ItemCount: len(generated.Items),
		EdgeCount: len(generated.Edges),
	}, nil
}

func (s *importService) ExportPlan(ctx context.Context, planID string) (*importer.PlanSchema, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	edges, err := s.edges.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	return importer.Export(plan, items, edges), nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
