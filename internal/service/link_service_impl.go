package service

import (
	"context"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/graph"
	"github.com/alexanderramin/telos/internal/linker"
	"github.com/alexanderramin/telos/internal/repository"
	"github.com/alexanderramin/telos/internal/scheduler"
)

type linkService struct {
	plans    repository.PlanRepo
	items    repository.PlanItemRepo
	edges    repository.EdgeRepo
	applier  *MutationApplier
	observer UseCaseObserver
}

func NewLinkService(
	plans repository.PlanRepo,
	items repository.PlanItemRepo,
	edges repository.EdgeRepo,
	observer UseCaseObserver,
) LinkService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &linkService{
		plans:    plans,
		items:    items,
		edges:    edges,
		applier:  NewMutationApplier(edges, items),
		observer: observer,
	}
}

type proposeFunc func(selection []*domain.PlanItem) ([]domain.PredecessorEdge, error)
type removeFunc func(g *graph.Graph, selection []*domain.PlanItem) ([]domain.PredecessorEdge, error)

func (s *linkService) ProposeChain(ctx context.Context, req contract.LinkRequest) (*contract.LinkResponse, error) {
	return s.bulkAdd(ctx, contract.LinkChain, req, linker.Chain)
}

func (s *linkService) ProposeFanIn(ctx context.Context, req contract.LinkRequest) (*contract.LinkResponse, error) {
	return s.bulkAdd(ctx, contract.LinkFanIn, req, linker.FanIn)
}

func (s *linkService) ProposeFanOut(ctx context.Context, req contract.LinkRequest) (*contract.LinkResponse, error) {
	return s.bulkAdd(ctx, contract.LinkFanOut, req, linker.FanOut)
}

func (s *linkService) ProposeUnlink(ctx context.Context, req contract.LinkRequest) (*contract.LinkResponse, error) {
	return s.bulkRemove(ctx, contract.LinkUnlink, req, linker.Unlink)
}

func (s *linkService) ProposeClearAll(ctx context.Context, req contract.LinkRequest) (*contract.LinkResponse, error) {
	return s.bulkRemove(ctx, contract.LinkClearAll, req, linker.ClearAll)
}

func (s *linkService) bulkAdd(ctx context.Context, cmd contract.LinkCommand, req contract.LinkRequest, build proposeFunc) (*contract.LinkResponse, error) {
	var resp *contract.LinkResponse
	fields := map[string]any{"plan_id": req.PlanID, "selection": len(req.Selection), "dry_run": req.DryRun}
	err := observe(ctx, s.observer, "link."+string(cmd), fields, func(ctx context.Context) error {
		plan, g, err := s.loadPlan(ctx, req.PlanID)
		if err != nil {
			return err
		}
		sel, err := selectionItems(g, req.Selection)
		if err != nil {
			return err
		}
		proposals, err := build(sel)
		if err != nil {
			return err
		}

		batch := linker.NewBatch(g)
		if err := batch.ProposeAll(proposals); err != nil {
			return err
		}

		dates, err := scheduler.ComputeDates(batch.Graph(), scheduler.Options{DefaultStart: &plan.StartDate})
		if err != nil {
			return err
		}
		changed := changedDates(g, dates)

		resp = &contract.LinkResponse{
			Command:       cmd,
			AcceptedEdges: batch.Accepted(),
			SkippedEdges:  batch.Skipped(),
			UpdatedDates:  changed,
		}
		if !req.DryRun {
			resp.Applied = s.applier.Apply(ctx, EdgeMutations{Add: batch.Accepted(), Dates: changed})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *linkService) bulkRemove(ctx context.Context, cmd contract.LinkCommand, req contract.LinkRequest, collect removeFunc) (*contract.LinkResponse, error) {
	var resp *contract.LinkResponse
	fields := map[string]any{"plan_id": req.PlanID, "selection": len(req.Selection), "dry_run": req.DryRun}
	err := observe(ctx, s.observer, "link."+string(cmd), fields, func(ctx context.Context) error {
		plan, g, err := s.loadPlan(ctx, req.PlanID)
		if err != nil {
			return err
		}
		sel, err := selectionItems(g, req.Selection)
		if err != nil {
			return err
		}
		removals, err := collect(g, sel)
		if err != nil {
			return err
		}

		post := g.Clone()
		for _, e := range removals {
			post.RemoveEdge(e.ItemID, e.PredecessorID)
		}
		dates, err := scheduler.ComputeDates(post, scheduler.Options{DefaultStart: &plan.StartDate})
		if err != nil {
			return err
		}
		changed := changedDates(g, dates)

		resp = &contract.LinkResponse{
			Command:      cmd,
			RemovedEdges: removals,
			UpdatedDates: changed,
		}
		if !req.DryRun {
			resp.Applied = s.applier.Apply(ctx, EdgeMutations{Remove: removals, Dates: changed})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AddEdge validates and persists a single typed edge. Unlike the bulk
// operations it honors the edge's own type and lag.
func (s *linkService) AddEdge(ctx context.Context, planID string, e domain.PredecessorEdge, dryRun bool) (*contract.LinkResponse, error) {
	var resp *contract.LinkResponse
	fields := map[string]any{"plan_id": planID, "item_id": e.ItemID, "predecessor_id": e.PredecessorID, "dry_run": dryRun}
	err := observe(ctx, s.observer, "link.ADD_EDGE", fields, func(ctx context.Context) error {
		plan, g, err := s.loadPlan(ctx, planID)
		if err != nil {
			return err
		}
		typ, err := domain.ParseDependencyType(string(e.Type))
		if err != nil {
			return err
		}
		e.Type = typ

		batch := linker.NewBatch(g)
		if err := batch.Propose(e); err != nil {
			return err
		}

		dates, err := scheduler.ComputeDates(batch.Graph(), scheduler.Options{DefaultStart: &plan.StartDate})
		if err != nil {
			return err
		}
		changed := changedDates(g, dates)

		resp = &contract.LinkResponse{
			Command:       contract.LinkChain,
			AcceptedEdges: batch.Accepted(),
			SkippedEdges:  batch.Skipped(),
			UpdatedDates:  changed,
		}
		if !dryRun {
			resp.Applied = s.applier.Apply(ctx, EdgeMutations{Add: batch.Accepted(), Dates: changed})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RemoveEdge deletes a single edge. Removing an edge that does not exist is
// a no-op, mirroring how duplicate additions are skipped.
func (s *linkService) RemoveEdge(ctx context.Context, planID, itemID, predecessorID string, dryRun bool) (*contract.LinkResponse, error) {
	var resp *contract.LinkResponse
	fields := map[string]any{"plan_id": planID, "item_id": itemID, "predecessor_id": predecessorID, "dry_run": dryRun}
	err := observe(ctx, s.observer, "link.REMOVE_EDGE", fields, func(ctx context.Context) error {
		plan, g, err := s.loadPlan(ctx, planID)
		if err != nil {
			return err
		}

		var removals []domain.PredecessorEdge
		for _, e := range g.Predecessors(itemID) {
			if e.PredecessorID == predecessorID {
				removals = append(removals, e)
			}
		}

		post := g.Clone()
		for _, e := range removals {
			post.RemoveEdge(e.ItemID, e.PredecessorID)
		}
		dates, err := scheduler.ComputeDates(post, scheduler.Options{DefaultStart: &plan.StartDate})
		if err != nil {
			return err
		}
		changed := changedDates(g, dates)

		resp = &contract.LinkResponse{
			Command:      contract.LinkUnlink,
			RemovedEdges: removals,
			UpdatedDates: changed,
		}
		if !dryRun {
			resp.Applied = s.applier.Apply(ctx, EdgeMutations{Remove: removals, Dates: changed})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *linkService) ListEdges(ctx context.Context, planID string) ([]domain.PredecessorEdge, error) {
	return s.edges.ListByPlan(ctx, planID)
}

func (s *linkService) loadPlan(ctx context.Context, planID string) (*domain.Plan, *graph.Graph, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	g, err := loadPlanGraph(ctx, s.items, s.edges, planID)
	if err != nil {
		return nil, nil, err
	}
	return plan, g, nil
}
