package service

import (
	"context"
	"time"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/repository"
)

// EdgeMutations is the persistence plan a link operation produced: edges to
// insert, edges to delete, and the date changes the recompute derived from
// them.
type EdgeMutations struct {
	Add    []domain.PredecessorEdge
	Remove []domain.PredecessorEdge
	Dates  map[string]contract.ItemDates
}

// MutationApplier persists edge mutations and derived dates item by item,
// without a surrounding transaction. Writes that fail (for example because
// another process deleted the item meanwhile) land in the report's Failed
// list; earlier writes stay applied. Validation already happened against the
// in-memory graph, so failures here are storage-level, not semantic.
type MutationApplier struct {
	edges repository.EdgeRepo
	items repository.PlanItemRepo
	now   func() time.Time
}

func NewMutationApplier(edges repository.EdgeRepo, items repository.PlanItemRepo) *MutationApplier {
	return &MutationApplier{
		edges: edges,
		items: items,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Apply runs edge inserts, then edge deletes, then date updates. Each date
// entry counts as one per-item outcome in the report; edge failures are
// attributed to the dependent item.
func (a *MutationApplier) Apply(ctx context.Context, m EdgeMutations) *contract.ApplyReport {
	report := &contract.ApplyReport{}

	for _, e := range m.Add {
		if err := a.edges.Create(ctx, &e); err != nil {
			report.Failed = append(report.Failed, contract.ApplyFailure{
				ItemID:  e.ItemID,
				Message: err.Error(),
			})
		}
	}
	for _, e := range m.Remove {
		if err := a.edges.Delete(ctx, e.ItemID, e.PredecessorID); err != nil {
			report.Failed = append(report.Failed, contract.ApplyFailure{
				ItemID:  e.ItemID,
				Message: err.Error(),
			})
		}
	}

	updatedAt := a.now()
	for _, id := range sortedDateKeys(m.Dates) {
		d := m.Dates[id]
		if err := a.items.UpdateDates(ctx, id, d.Start, d.Finish, updatedAt); err != nil {
			report.Failed = append(report.Failed, contract.ApplyFailure{
				ItemID:  id,
				Message: err.Error(),
			})
			continue
		}
		report.Succeeded = append(report.Succeeded, id)
	}
	return report
}
