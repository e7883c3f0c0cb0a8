package scheduler

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/graph"
)

// CyclicGraphError means the scheduler was handed a graph that is already
// cyclic. Upstream validation makes this unreachable; if it occurs it
// indicates a bug in the commit protocol and must not be swallowed.
type CyclicGraphError struct {
	Cycle []string
}

func (e *CyclicGraphError) Error() string {
	return fmt.Sprintf("predecessor graph contains a cycle: %s", strings.Join(e.Cycle, " -> "))
}

// TopologicalOrder returns every item ID ordered so each item appears after
// all of its predecessors (Kahn's algorithm). Among items that are ready at
// the same time, SortOrder breaks the tie, then ID.
func TopologicalOrder(g *graph.Graph) ([]string, error) {
	items := g.Items()
	indegree := make(map[string]int, len(items))
	for _, it := range items {
		indegree[it.ID] = len(g.Predecessors(it.ID))
	}

	var ready []*domain.PlanItem
	for _, it := range items {
		if indegree[it.ID] == 0 {
			ready = append(ready, it)
		}
	}

	order := make([]string, 0, len(items))
	for len(ready) > 0 {
		min := 0
		for i := 1; i < len(ready); i++ {
			if readyBefore(ready[i], ready[min]) {
				min = i
			}
		}
		next := ready[min]
		ready = append(ready[:min], ready[min+1:]...)
		order = append(order, next.ID)

		for _, depID := range g.Dependents(next.ID) {
			indegree[depID]--
			if indegree[depID] == 0 {
				dep, _ := g.Item(depID)
				ready = append(ready, dep)
			}
		}
	}

	if len(order) < len(items) {
		return nil, &CyclicGraphError{Cycle: graph.FindCycle(g)}
	}
	return order, nil
}

func readyBefore(a, b *domain.PlanItem) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.ID < b.ID
}
