// Package linker builds the edge mutations behind the bulk link operations:
// chain, fan-in, fan-out, unlink and clear-all. Operations only propose
// mutations; validation happens through a Batch and persistence is the
// mutation applier's job.
package linker

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/graph"
)

// MinSelection is the smallest selection any bulk operation accepts.
const MinSelection = 2

// OrderSelection returns the selection sorted by SortOrder, then ID. Bulk
// operations run over the plan sequence, never over click order.
func OrderSelection(items []*domain.PlanItem) []*domain.PlanItem {
	out := make([]*domain.PlanItem, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func checkSelection(selection []*domain.PlanItem) error {
	if len(selection) < MinSelection {
		return &contract.LinkError{
			Code:    contract.LinkErrInsufficientSelection,
			Message: fmt.Sprintf("need at least %d selected items, got %d", MinSelection, len(selection)),
		}
	}
	return nil
}

func proposal(itemID, predecessorID string) domain.PredecessorEdge {
	return domain.PredecessorEdge{
		ItemID:        itemID,
		PredecessorID: predecessorID,
		Type:          domain.FinishToStart,
		LagDays:       0,
	}
}

// Chain proposes selection[i] depends-on selection[i-1] for i = 1..n-1.
func Chain(selection []*domain.PlanItem) ([]domain.PredecessorEdge, error) {
	if err := checkSelection(selection); err != nil {
		return nil, err
	}
	ordered := OrderSelection(selection)
	edges := make([]domain.PredecessorEdge, 0, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		edges = append(edges, proposal(ordered[i].ID, ordered[i-1].ID))
	}
	return edges, nil
}

// FanIn proposes the last selected item depending on every earlier one:
// all -> last. Earlier items' own predecessor sets are untouched.
func FanIn(selection []*domain.PlanItem) ([]domain.PredecessorEdge, error) {
	if err := checkSelection(selection); err != nil {
		return nil, err
	}
	ordered := OrderSelection(selection)
	last := ordered[len(ordered)-1]
	edges := make([]domain.PredecessorEdge, 0, len(ordered)-1)
	for _, it := range ordered[:len(ordered)-1] {
		edges = append(edges, proposal(last.ID, it.ID))
	}
	return edges, nil
}

// FanOut proposes every later item depending on the first: first -> all.
func FanOut(selection []*domain.PlanItem) ([]domain.PredecessorEdge, error) {
	if err := checkSelection(selection); err != nil {
		return nil, err
	}
	ordered := OrderSelection(selection)
	first := ordered[0]
	edges := make([]domain.PredecessorEdge, 0, len(ordered)-1)
	for _, it := range ordered[1:] {
		edges = append(edges, proposal(it.ID, first.ID))
	}
	return edges, nil
}

// Unlink collects existing edges whose dependent AND predecessor are both in
// the selection. Edges reaching outside the selection survive.
func Unlink(g *graph.Graph, selection []*domain.PlanItem) ([]domain.PredecessorEdge, error) {
	if err := checkSelection(selection); err != nil {
		return nil, err
	}
	selected := make(map[string]bool, len(selection))
	for _, it := range selection {
		selected[it.ID] = true
	}
	var removals []domain.PredecessorEdge
	for _, it := range OrderSelection(selection) {
		for _, e := range g.Predecessors(it.ID) {
			if selected[e.PredecessorID] {
				removals = append(removals, e)
			}
		}
	}
	return removals, nil
}

// ClearAll collects every edge whose dependent is in the selection,
// regardless of where the predecessor lives.
func ClearAll(g *graph.Graph, selection []*domain.PlanItem) ([]domain.PredecessorEdge, error) {
	if err := checkSelection(selection); err != nil {
		return nil, err
	}
	var removals []domain.PredecessorEdge
	for _, it := range OrderSelection(selection) {
		removals = append(removals, g.Predecessors(it.ID)...)
	}
	return removals, nil
}
