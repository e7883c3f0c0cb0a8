package app

import (
	"github.com/alexanderramin/telos/internal/domain"
)

type LinkCommand string

const (
	LinkChain    LinkCommand = "CHAIN"
	LinkFanIn    LinkCommand = "FAN_IN"
	LinkFanOut   LinkCommand = "FAN_OUT"
	LinkUnlink   LinkCommand = "UNLINK"
	LinkClearAll LinkCommand = "CLEAR_ALL"
)

type LinkRequest struct {
	PlanID string

	// Selection holds the selected item IDs. Order does not matter; the link
	// service re-orders the selection by SortOrder before building edges.
	Selection []string

	// DryRun validates and recomputes dates without persisting anything.
	DryRun bool
}

func NewLinkRequest(planID string, selection []string) LinkRequest {
	return LinkRequest{PlanID: planID, Selection: selection}
}

// ApplyFailure identifies one item whose persistence failed mid-batch.
type ApplyFailure struct {
	ItemID  string
	Message string
}

// ApplyReport is the per-item outcome of a persistence pass. Items that
// succeeded are not rolled back when later items fail; the caller must
// reload the graph before retrying the failed ones.
type ApplyReport struct {
	Succeeded []string
	Failed    []ApplyFailure
}

func (r *ApplyReport) AllSucceeded() bool {
	return len(r.Failed) == 0
}

type LinkResponse struct {
	Command       LinkCommand
	AcceptedEdges []domain.PredecessorEdge
	SkippedEdges  []domain.PredecessorEdge // already-existing pairs, idempotent no-ops
	RemovedEdges  []domain.PredecessorEdge
	UpdatedDates  map[string]ItemDates
	Applied       *ApplyReport // nil on dry-run
}

type LinkErrorCode string

const (
	LinkErrInsufficientSelection LinkErrorCode = "INSUFFICIENT_SELECTION"
	LinkErrCircularDependency    LinkErrorCode = "CIRCULAR_DEPENDENCY"
	LinkErrDanglingReference     LinkErrorCode = "DANGLING_REFERENCE"
	LinkErrInternal              LinkErrorCode = "INTERNAL_ERROR"
)

// LinkError is the failure surface of all linking operations. For
// CIRCULAR_DEPENDENCY the offending pair is carried so the caller can tell
// the user exactly which link was rejected.
type LinkError struct {
	Code          LinkErrorCode
	Message       string
	ItemID        string
	PredecessorID string
}

func (e *LinkError) Error() string {
	return string(e.Code) + ": " + e.Message
}
