package app

import "time"

// ItemDates is the scheduler's output for one item. Both fields are nil for
// an island item with no start of its own and no plan default.
type ItemDates struct {
	Start  *time.Time
	Finish *time.Time
}

type ScheduleRequest struct {
	PlanID string
	DryRun bool
}

func NewScheduleRequest(planID string) ScheduleRequest {
	return ScheduleRequest{PlanID: planID}
}

type ScheduleResponse struct {
	GeneratedAt time.Time
	Dates       map[string]ItemDates
	Applied     *ApplyReport // nil on dry-run
}
