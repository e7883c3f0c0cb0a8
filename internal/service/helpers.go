package service

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/graph"
	"github.com/alexanderramin/telos/internal/repository"
)

// loadPlanGraph builds the in-memory dependency graph for one plan from the
// item and edge tables.
func loadPlanGraph(ctx context.Context, items repository.PlanItemRepo, edges repository.EdgeRepo, planID string) (*graph.Graph, error) {
	list, err := items.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	stored, err := edges.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	return graph.FromItems(list, stored)
}

// changedDates keeps only the entries whose computed dates differ from what
// the item currently carries, so the applier touches nothing that did not
// move.
func changedDates(g *graph.Graph, computed map[string]contract.ItemDates) map[string]contract.ItemDates {
	out := make(map[string]contract.ItemDates)
	for id, d := range computed {
		it, ok := g.Item(id)
		if !ok {
			continue
		}
		if !sameDate(it.StartDate, d.Start) || !sameDate(it.FinishDate, d.Finish) {
			out[id] = d
		}
	}
	return out
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sortedDateKeys(dates map[string]contract.ItemDates) []string {
	keys := make([]string, 0, len(dates))
	for id := range dates {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}

// selectionItems resolves selected IDs against the graph, failing on any ID
// that is not part of the plan.
func selectionItems(g *graph.Graph, ids []string) ([]*domain.PlanItem, error) {
	out := make([]*domain.PlanItem, 0, len(ids))
	for _, id := range ids {
		it, ok := g.Item(id)
		if !ok {
			return nil, &contract.LinkError{
				Code:    contract.LinkErrDanglingReference,
				Message: "selected item " + id + " is not part of the plan",
				ItemID:  id,
			}
		}
		out = append(out, it)
	}
	return out, nil
}
