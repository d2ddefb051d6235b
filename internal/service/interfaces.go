package service

import (
	"context"
	"time"

	"github.com/danielmeier/cramplan/internal/contract"
	"github.com/danielmeier/cramplan/internal/domain"
)

type PlanService interface {
	CreatePlan(ctx context.Context, req contract.CreatePlanRequest) (*contract.PlanSummary, error)
	GetActive(ctx context.Context, userID string) (*domain.StudyPlan, error)
	Reset(ctx context.Context, userID string) error
}

type SessionService interface {
	Complete(ctx context.Context, req contract.CompleteSessionRequest) (*contract.CompletionResult, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.ScheduledSession, error)
	MarkMissed(ctx context.Context, userID string, now *time.Time) (*contract.MarkMissedResult, error)
	Move(ctx context.Context, req contract.MoveSessionRequest) (*domain.ScheduledSession, error)
	ToggleTutorHelp(ctx context.Context, userID, sessionID string) (bool, error)
}

type ReplanService interface {
	Redistribute(ctx context.Context, req contract.RedistributeRequest) (*contract.RedistributeResult, error)
	ReduceWeek(ctx context.Context, req contract.ReduceWeekRequest) (*contract.ReduceWeekResult, error)
}

type StatusService interface {
	GetStatus(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error)
}
