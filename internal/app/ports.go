package app

import "context"

type LinkUseCase interface {
	ProposeChain(ctx context.Context, req LinkRequest) (*LinkResponse, error)
	ProposeFanIn(ctx context.Context, req LinkRequest) (*LinkResponse, error)
	ProposeFanOut(ctx context.Context, req LinkRequest) (*LinkResponse, error)
	ProposeUnlink(ctx context.Context, req LinkRequest) (*LinkResponse, error)
	ProposeClearAll(ctx context.Context, req LinkRequest) (*LinkResponse, error)
}

type ScheduleUseCase interface {
	Recompute(ctx context.Context, req ScheduleRequest) (*ScheduleResponse, error)
}
