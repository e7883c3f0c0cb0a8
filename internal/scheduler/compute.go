package scheduler

import (
	"time"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/graph"
)

// Options configures a date computation pass.
type Options struct {
	// DefaultStart seeds items that have no predecessors and no start of
	// their own (typically the plan start date). Nil leaves such items
	// undated.
	DefaultStart *time.Time

	// Calendar advances dates; nil means CalendarDays.
	Calendar Calendar
}

// ComputeDates derives start and finish dates for every item in the graph,
// processing items in topological order so each item sees final predecessor
// dates. Per edge the type rule yields a candidate start; with multiple
// predecessors the latest candidate wins. Pinned items keep their own start
// but still get finish = start + duration and still feed dates forward.
//
// Fails with *CyclicGraphError if the graph is not acyclic.
func ComputeDates(g *graph.Graph, opts Options) (map[string]contract.ItemDates, error) {
	cal := opts.Calendar
	if cal == nil {
		cal = CalendarDays
	}

	order, err := TopologicalOrder(g)
	if err != nil {
		return nil, err
	}

	dates := make(map[string]contract.ItemDates, len(order))
	for _, id := range order {
		it, _ := g.Item(id)
		start := resolveStart(g, it, dates, cal, opts.DefaultStart)
		if start == nil {
			// Undatable island: retain whatever the item already has.
			dates[id] = contract.ItemDates{Start: it.StartDate, Finish: it.FinishDate}
			continue
		}
		finish := cal(*start, it.DurationDays)
		dates[id] = contract.ItemDates{Start: start, Finish: &finish}
	}
	return dates, nil
}

func resolveStart(g *graph.Graph, it *domain.PlanItem, dates map[string]contract.ItemDates, cal Calendar, defaultStart *time.Time) *time.Time {
	if it.Pinned && it.StartDate != nil {
		s := *it.StartDate
		return &s
	}

	var latest *time.Time
	for _, e := range g.Predecessors(it.ID) {
		cand := candidateStart(e, it, dates[e.PredecessorID], cal)
		if cand == nil {
			continue
		}
		if latest == nil || cand.After(*latest) {
			latest = cand
		}
	}
	if latest != nil {
		return latest
	}

	// No usable constraint: behaves like a root item.
	if it.StartDate != nil {
		s := *it.StartDate
		return &s
	}
	if defaultStart != nil {
		s := *defaultStart
		return &s
	}
	return nil
}

// candidateStart applies the per-type date rule for one edge. Edges whose
// predecessor has no computed date contribute no constraint. A negative lag
// is accepted unclamped; FF/SF may legitimately place the candidate finish
// before the candidate start.
func candidateStart(e domain.PredecessorEdge, it *domain.PlanItem, pred contract.ItemDates, cal Calendar) *time.Time {
	switch e.Type {
	case domain.FinishToStart:
		if pred.Finish == nil {
			return nil
		}
		s := cal(*pred.Finish, e.LagDays)
		return &s
	case domain.StartToStart:
		if pred.Start == nil {
			return nil
		}
		s := cal(*pred.Start, e.LagDays)
		return &s
	case domain.FinishToFinish:
		if pred.Finish == nil {
			return nil
		}
		f := cal(*pred.Finish, e.LagDays)
		s := cal(f, -it.DurationDays)
		return &s
	case domain.StartToFinish:
		if pred.Start == nil {
			return nil
		}
		f := cal(*pred.Start, e.LagDays)
		s := cal(f, -it.DurationDays)
		return &s
	}
	return nil
}
