package linker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/graph"
)

// Batch accumulates proposed edges, validating each one against an overlay
// of the committed graph plus the edges accepted earlier in the same batch.
// Chaining A, B, C therefore checks C→B against a graph that already holds
// B→A. The committed graph is never touched: on any rejection the caller
// simply drops the batch, which is what makes the operation atomic without
// rollback.
type Batch struct {
	overlay  *graph.Graph
	accepted []domain.PredecessorEdge
	skipped  []domain.PredecessorEdge
}

// NewBatch starts a batch over a clone of the current graph.
func NewBatch(current *graph.Graph) *Batch {
	return &Batch{overlay: current.Clone()}
}

// Propose validates one edge. An exact (dependent, predecessor) duplicate of
// an existing or already-accepted edge is recorded as skipped, not an error.
// A cycle rejects the proposal with the offending pair; the caller is
// expected to abandon the whole batch.
func (b *Batch) Propose(e domain.PredecessorEdge) error {
	if b.overlay.HasEdge(e.ItemID, e.PredecessorID) {
		b.skipped = append(b.skipped, e)
		return nil
	}
	if cycle := graph.WouldCreateCycle(b.overlay, e.ItemID, e.PredecessorID); cycle != nil {
		return &contract.LinkError{
			Code:          contract.LinkErrCircularDependency,
			Message:       fmt.Sprintf("linking %s after %s would create a cycle: %s", e.ItemID, e.PredecessorID, strings.Join(cycle, " -> ")),
			ItemID:        e.ItemID,
			PredecessorID: e.PredecessorID,
		}
	}
	if err := b.overlay.AddEdge(e); err != nil {
		var dangling *graph.DanglingRefError
		if errors.As(err, &dangling) {
			return &contract.LinkError{
				Code:          contract.LinkErrDanglingReference,
				Message:       dangling.Error(),
				ItemID:        e.ItemID,
				PredecessorID: e.PredecessorID,
			}
		}
		return err
	}
	b.accepted = append(b.accepted, e)
	return nil
}

// ProposeAll feeds edges through Propose in order, stopping at the first
// rejection.
func (b *Batch) ProposeAll(edges []domain.PredecessorEdge) error {
	for _, e := range edges {
		if err := b.Propose(e); err != nil {
			return err
		}
	}
	return nil
}

// Accepted returns the edges that passed validation, in proposal order.
func (b *Batch) Accepted() []domain.PredecessorEdge {
	return b.accepted
}

// Skipped returns the duplicate proposals that were ignored.
func (b *Batch) Skipped() []domain.PredecessorEdge {
	return b.skipped
}

// Graph returns the overlay including all accepted edges, ready for the
// scheduler to recompute dates before anything is persisted.
func (b *Batch) Graph() *graph.Graph {
	return b.overlay
}
