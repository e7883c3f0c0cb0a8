package service

import (
	"context"
	"time"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/repository"
	"github.com/alexanderramin/telos/internal/scheduler"
)

type scheduleService struct {
	plans    repository.PlanRepo
	items    repository.PlanItemRepo
	edges    repository.EdgeRepo
	applier  *MutationApplier
	observer UseCaseObserver
	calendar scheduler.Calendar
}

func NewScheduleService(
	plans repository.PlanRepo,
	items repository.PlanItemRepo,
	edges repository.EdgeRepo,
	observer UseCaseObserver,
) ScheduleService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &scheduleService{
		plans:    plans,
		items:    items,
		edges:    edges,
		applier:  NewMutationApplier(edges, items),
		observer: observer,
		calendar: scheduler.CalendarDays,
	}
}

func (s *scheduleService) Recompute(ctx context.Context, req contract.ScheduleRequest) (*contract.ScheduleResponse, error) {
	var resp *contract.ScheduleResponse
	fields := map[string]any{"plan_id": req.PlanID, "dry_run": req.DryRun}
	err := observe(ctx, s.observer, "schedule.recompute", fields, func(ctx context.Context) error {
		plan, err := s.plans.GetByID(ctx, req.PlanID)
		if err != nil {
			return err
		}
		g, err := loadPlanGraph(ctx, s.items, s.edges, req.PlanID)
		if err != nil {
			return err
		}

		dates, err := scheduler.ComputeDates(g, scheduler.Options{
			DefaultStart: &plan.StartDate,
			Calendar:     s.calendar,
		})
		if err != nil {
			return err
		}

		resp = &contract.ScheduleResponse{
			GeneratedAt: time.Now().UTC(),
			Dates:       dates,
		}
		if !req.DryRun {
			changed := changedDates(g, dates)
			resp.Applied = s.applier.Apply(ctx, EdgeMutations{Dates: changed})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
