package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/telos/internal/domain"
)

var (
	// ErrSelfLoop is returned for edges whose dependent and predecessor are
	// the same item.
	ErrSelfLoop = errors.New("item cannot depend on itself")

	// ErrDuplicateEdge is returned when an (item, predecessor) pair already
	// has an edge. Duplicates are never merged silently.
	ErrDuplicateEdge = errors.New("predecessor edge already exists")
)

// DanglingRefError reports an edge endpoint with no corresponding item in the
// graph, e.g. a stale selection after a concurrent delete.
type DanglingRefError struct {
	ID string
}

func (e *DanglingRefError) Error() string {
	return fmt.Sprintf("item %s not found in graph", e.ID)
}

// Graph is an in-memory snapshot of plan items and their predecessor edges,
// keyed by item ID. It holds structure only. AddEdge deliberately does not
// check acyclicity: cycle safety is the caller's responsibility, so that a
// proposed edge can be validated against an overlay graph that already
// contains edges accepted earlier in the same batch.
type Graph struct {
	items map[string]*domain.PlanItem
	preds map[string][]domain.PredecessorEdge // dependent ID -> ordered edges
	deps  map[string][]string                 // predecessor ID -> dependent IDs
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		items: make(map[string]*domain.PlanItem),
		preds: make(map[string][]domain.PredecessorEdge),
		deps:  make(map[string][]string),
	}
}

// FromItems builds a graph from a flat item list and edge list.
// Every edge endpoint must reference a listed item.
func FromItems(items []*domain.PlanItem, edges []domain.PredecessorEdge) (*Graph, error) {
	g := New()
	for _, it := range items {
		g.AddItem(it)
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("adding edge %s -> %s: %w", e.ItemID, e.PredecessorID, err)
		}
	}
	return g, nil
}

// AddItem registers an item node. Re-adding an existing ID replaces the item
// pointer but keeps its edges.
func (g *Graph) AddItem(it *domain.PlanItem) {
	g.items[it.ID] = it
}

// Item returns the item for id, if present.
func (g *Graph) Item(id string) (*domain.PlanItem, bool) {
	it, ok := g.items[id]
	return it, ok
}

// Len returns the number of items.
func (g *Graph) Len() int {
	return len(g.items)
}

// Items returns all items ordered by SortOrder, then ID.
func (g *Graph) Items() []*domain.PlanItem {
	out := make([]*domain.PlanItem, 0, len(g.items))
	for _, it := range g.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AddEdge attaches a predecessor edge. Both endpoints must exist, self-loops
// are rejected, and at most one edge may exist per (item, predecessor) pair.
func (g *Graph) AddEdge(e domain.PredecessorEdge) error {
	if e.ItemID == e.PredecessorID {
		return ErrSelfLoop
	}
	if _, ok := g.items[e.ItemID]; !ok {
		return &DanglingRefError{ID: e.ItemID}
	}
	if _, ok := g.items[e.PredecessorID]; !ok {
		return &DanglingRefError{ID: e.PredecessorID}
	}
	if g.HasEdge(e.ItemID, e.PredecessorID) {
		return ErrDuplicateEdge
	}
	g.preds[e.ItemID] = append(g.preds[e.ItemID], e)
	g.deps[e.PredecessorID] = append(g.deps[e.PredecessorID], e.ItemID)
	return nil
}

// RemoveEdge detaches the edge for the given pair, reporting whether it existed.
func (g *Graph) RemoveEdge(itemID, predecessorID string) bool {
	edges := g.preds[itemID]
	for i, e := range edges {
		if e.PredecessorID == predecessorID {
			g.preds[itemID] = append(edges[:i:i], edges[i+1:]...)
			g.removeDependent(predecessorID, itemID)
			return true
		}
	}
	return false
}

func (g *Graph) removeDependent(predecessorID, itemID string) {
	ids := g.deps[predecessorID]
	for i, id := range ids {
		if id == itemID {
			g.deps[predecessorID] = append(ids[:i:i], ids[i+1:]...)
			return
		}
	}
}

// HasEdge reports whether an edge exists for the (item, predecessor) pair.
func (g *Graph) HasEdge(itemID, predecessorID string) bool {
	for _, e := range g.preds[itemID] {
		if e.PredecessorID == predecessorID {
			return true
		}
	}
	return false
}

// Predecessors returns a copy of the ordered edge list owned by itemID.
func (g *Graph) Predecessors(itemID string) []domain.PredecessorEdge {
	edges := g.preds[itemID]
	out := make([]domain.PredecessorEdge, len(edges))
	copy(out, edges)
	return out
}

// Dependents returns the IDs of items that depend on predecessorID.
func (g *Graph) Dependents(predecessorID string) []string {
	ids := g.deps[predecessorID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Edges returns every edge in deterministic order: items by SortOrder/ID,
// each item's edges in their owned order.
func (g *Graph) Edges() []domain.PredecessorEdge {
	var out []domain.PredecessorEdge
	for _, it := range g.Items() {
		out = append(out, g.preds[it.ID]...)
	}
	return out
}

// Clone returns a structural copy sharing item pointers. Used as the overlay
// for batch validation so proposals never touch the committed graph.
func (g *Graph) Clone() *Graph {
	c := New()
	for id, it := range g.items {
		c.items[id] = it
	}
	for id, edges := range g.preds {
		cp := make([]domain.PredecessorEdge, len(edges))
		copy(cp, edges)
		c.preds[id] = cp
	}
	for id, ids := range g.deps {
		cp := make([]string, len(ids))
		copy(cp, ids)
		c.deps[id] = cp
	}
	return c
}
