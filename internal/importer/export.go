package importer

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/telos/internal/domain"
)

// Export builds a PlanSchema from persisted domain objects. Re-importing the
// result reproduces the same plan structure under fresh IDs.
func Export(plan *domain.Plan, items []*domain.PlanItem, edges []domain.PredecessorEdge) *PlanSchema {
	ordered := make([]*domain.PlanItem, len(items))
	copy(ordered, items)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].SortOrder != ordered[j].SortOrder {
			return ordered[i].SortOrder < ordered[j].SortOrder
		}
		return ordered[i].ID < ordered[j].ID
	})

	refByID := make(map[string]string, len(ordered))
	for i, it := range ordered {
		refByID[it.ID] = fmt.Sprintf("item-%d", i+1)
	}

	predsByItem := make(map[string][]PredecessorImport)
	for _, e := range edges {
		ref, ok := refByID[e.PredecessorID]
		if !ok {
			continue
		}
		entry := PredecessorImport{Ref: ref, Type: string(e.Type)}
		if e.LagDays != 0 {
			lag := e.LagDays
			entry.LagDays = &lag
		}
		predsByItem[e.ItemID] = append(predsByItem[e.ItemID], entry)
	}

	out := &PlanSchema{
		Plan: PlanImport{
			ShortID:   plan.ShortID,
			Name:      plan.Name,
			StartDate: plan.StartDate.Format("2006-01-02"),
		},
	}
	for _, it := range ordered {
		order := it.SortOrder
		dur := it.DurationDays
		entry := ItemImport{
			Ref:          refByID[it.ID],
			Title:        it.Title,
			SortOrder:    &order,
			DurationDays: &dur,
			Predecessors: predsByItem[it.ID],
		}
		if it.Pinned {
			pinned := true
			entry.Pinned = &pinned
		}
		// Only pinned starts are authoritative input; derived dates are
		// recomputed after import.
		if it.Pinned && it.StartDate != nil {
			s := it.StartDate.Format("2006-01-02")
			entry.StartDate = &s
		}
		out.Items = append(out.Items, entry)
	}
	return out
}
