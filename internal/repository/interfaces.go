package repository

import (
	"context"
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
)

type PlanRepo interface {
	Create(ctx context.Context, p *domain.StudyPlan) error
	GetByID(ctx context.Context, id string) (*domain.StudyPlan, error)
	GetActive(ctx context.Context, userID string) (*domain.StudyPlan, error)
	List(ctx context.Context, userID string) ([]*domain.StudyPlan, error)
	DeactivateAll(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.ScheduledSession) error
	CreateBatch(ctx context.Context, sessions []*domain.ScheduledSession) error
	GetByID(ctx context.Context, id string) (*domain.ScheduledSession, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.ScheduledSession, error)
	ListByPlanAndStatus(ctx context.Context, planID string, status domain.SessionStatus) ([]*domain.ScheduledSession, error)
	ListByDateRange(ctx context.Context, planID string, from, to time.Time) ([]*domain.ScheduledSession, error)
	// MarkCompleted flips a pending session to completed. It reports
	// ErrNotFound for a missing row and ErrConflict when the session exists
	// but is no longer pending, making completion idempotent-safe.
	MarkCompleted(ctx context.Context, id string, completedAt time.Time, xpEarned int) error
	MarkMissedBefore(ctx context.Context, planID string, before time.Time) (int, error)
	UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) error
	SetTutorHelp(ctx context.Context, id string, needed bool) error
	CountCompletedForTopic(ctx context.Context, userID, topicID string) (int, error)
	CountUniqueCompletedTopics(ctx context.Context, userID string) (int, error)
}

type StudyLogRepo interface {
	Create(ctx context.Context, l *domain.StudyLog) error
	ListBySession(ctx context.Context, sessionID string) ([]*domain.StudyLog, error)
	ListRecent(ctx context.Context, userID string, days int) ([]*domain.StudyLog, error)
}

type ProfileRepo interface {
	Get(ctx context.Context, id string) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}

type AssessmentRepo interface {
	Upsert(ctx context.Context, a *domain.TopicAssessment) error
	ListByPlan(ctx context.Context, planID string) ([]*domain.TopicAssessment, error)
}

type BadgeRepo interface {
	Create(ctx context.Context, b *domain.EarnedBadge) error
	ListByUser(ctx context.Context, userID string) ([]*domain.EarnedBadge, error)
}

type OverrideRepo interface {
	Upsert(ctx context.Context, o *domain.WeeklyOverride) error
	GetByPlanWeek(ctx context.Context, planID string, weekStart time.Time) (*domain.WeeklyOverride, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.WeeklyOverride, error)
}
