package app

import "context"

type CreatePlanUseCase interface {
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*PlanSummary, error)
}

type CompleteSessionUseCase interface {
	Complete(ctx context.Context, req CompleteSessionRequest) (*CompletionResult, error)
}

type RedistributeUseCase interface {
	Redistribute(ctx context.Context, req RedistributeRequest) (*RedistributeResult, error)
}

type ReduceWeekUseCase interface {
	ReduceWeek(ctx context.Context, req ReduceWeekRequest) (*ReduceWeekResult, error)
}

type StatusUseCase interface {
	GetStatus(ctx context.Context, req StatusRequest) (*StatusResponse, error)
}
