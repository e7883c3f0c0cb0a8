package contract

import "github.com/alexanderramin/telos/internal/app"

type ItemDates = app.ItemDates

type ScheduleRequest = app.ScheduleRequest

func NewScheduleRequest(planID string) ScheduleRequest {
	return app.NewScheduleRequest(planID)
}

type ScheduleResponse = app.ScheduleResponse

type ScheduleUseCase = app.ScheduleUseCase
