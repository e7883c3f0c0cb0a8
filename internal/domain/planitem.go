package domain

import "time"

type PlanItem struct {
	ID     string
	PlanID string
	Title  string

	// SortOrder is the display sequence among siblings. The scheduler uses it
	// to break ties in topological order, and bulk link operations use it to
	// turn a selection into a sequence.
	SortOrder int

	// DurationDays is a whole number of days; 0 is a milestone.
	DurationDays int

	// StartDate and FinishDate are derived by the scheduler unless Pinned;
	// nil until first computed.
	StartDate  *time.Time
	FinishDate *time.Time

	// Pinned marks StartDate as authoritative input rather than derived output.
	Pinned bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
