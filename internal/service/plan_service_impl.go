package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielmeier/cramplan/internal/contract"
	"github.com/danielmeier/cramplan/internal/db"
	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/danielmeier/cramplan/internal/repository"
	"github.com/danielmeier/cramplan/internal/scheduler"
	"github.com/danielmeier/cramplan/internal/syllabus"
	"github.com/google/uuid"
)

type planService struct {
	plans    repository.PlanRepo
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPlanService(
	plans repository.PlanRepo,
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		plans:    plans,
		sessions: sessions,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) CreatePlan(ctx context.Context, req contract.CreatePlanRequest) (summary *contract.PlanSummary, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"course":    req.Course,
		"exam_date": req.ExamDate.Format("2006-01-02"),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	today := scheduler.DateOf(resolveNow(req.Today))

	hours := req.Hours
	if hours == nil && req.Slots != nil {
		hours = req.Slots.Collapse()
	}

	if !syllabus.ValidCourses[req.Course] {
		return nil, &contract.PlanError{
			Code:    contract.PlanErrInvalidCourse,
			Message: fmt.Sprintf("unknown course %q", req.Course),
		}
	}
	if !scheduler.DateOf(req.ExamDate).After(today) {
		return nil, &contract.PlanError{
			Code:    contract.PlanErrExamNotFuture,
			Message: "exam date must be in the future",
		}
	}
	if hours.Total() <= 0 {
		return nil, &contract.PlanError{
			Code:    contract.PlanErrNoAvailability,
			Message: "at least one weekday needs study hours",
		}
	}

	topics := syllabus.TopicsForCourse(syllabus.Course(req.Course))
	work, totalTopicHours := scheduler.SelectTopics(topics, req.Assessments)
	if len(work) == 0 {
		return nil, &contract.PlanError{
			Code:    contract.PlanErrNoTopics,
			Message: "every topic is already rated as known",
		}
	}

	days := scheduler.BuildStudyDays(hours, today, req.ExamDate)
	result := scheduler.BuildSchedule(work, days)
	fields["session_count"] = len(result.Sessions)
	fields["capacity_warning"] = result.HasCapacityWarning

	now := resolveNow(req.Today)
	plan := &domain.StudyPlan{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Course:    req.Course,
		ExamDate:  scheduler.DateOf(req.ExamDate),
		Hours:     hours,
		Slots:     req.Slots,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Plan, assessments, and the single-active invariant commit atomically.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		txAssessments := repository.NewSQLiteAssessmentRepo(tx)

		if err := txPlans.DeactivateAll(ctx, req.UserID); err != nil {
			return err
		}
		if err := txPlans.Create(ctx, plan); err != nil {
			return err
		}
		for topicID, confidence := range req.Assessments {
			a := &domain.TopicAssessment{
				ID:         uuid.New().String(),
				UserID:     req.UserID,
				PlanID:     plan.ID,
				TopicID:    topicID,
				Confidence: confidence,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := txAssessments.Upsert(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persisting plan: %w", err)
	}

	sessions := make([]*domain.ScheduledSession, 0, len(result.Sessions))
	for _, p := range result.Sessions {
		sessions = append(sessions, &domain.ScheduledSession{
			ID:            uuid.New().String(),
			PlanID:        plan.ID,
			UserID:        req.UserID,
			TopicID:       p.TopicID,
			TopicName:     p.TopicName,
			ScheduledDate: p.Date,
			EstimatedMin:  p.Minutes,
			Status:        domain.SessionPending,
			Kind:          p.Kind,
			PartIndex:     p.PartIndex,
			PartTotal:     p.PartTotal,
			CreatedAt:     now,
		})
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSessionRepo(tx).CreateBatch(ctx, sessions)
	})
	if err != nil {
		return nil, fmt.Errorf("persisting sessions: %w", err)
	}

	return &contract.PlanSummary{
		PlanID:              plan.ID,
		Course:              plan.Course,
		ExamDate:            plan.ExamDate,
		DaysUntilExam:       plan.DaysUntilExam(today),
		StudyDaysCount:      countSessionDates(sessions),
		TotalSessions:       len(sessions),
		TotalTopicHours:     totalTopicHours,
		TotalAvailableHours: result.TotalAvailableHours,
		HasCapacityWarning:  result.HasCapacityWarning,
		FirstWeekPreview:    firstWeekPreview(sessions),
	}, nil
}

func (s *planService) GetActive(ctx context.Context, userID string) (*domain.StudyPlan, error) {
	return s.plans.GetActive(ctx, userID)
}

// Reset deactivates the user's active plan without replacing it. Sessions
// stay on record; they just no longer belong to an active plan.
func (s *planService) Reset(ctx context.Context, userID string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reset-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	if _, err = s.plans.GetActive(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &contract.PlanError{Code: contract.PlanErrNoActivePlan, Message: "no active plan"}
		}
		return err
	}
	return s.plans.DeactivateAll(ctx, userID)
}

// countSessionDates reports how many distinct dates carry at least one
// session. Days the schedule skipped over do not count as study days.
func countSessionDates(sessions []*domain.ScheduledSession) int {
	dates := make(map[string]bool, len(sessions))
	for _, sess := range sessions {
		dates[sess.ScheduledDate.Format("2006-01-02")] = true
	}
	return len(dates)
}

// firstWeekPreview keeps the sessions on the first seven distinct study
// dates. With sparse availability those dates can reach well past the first
// calendar week; the preview follows the schedule, not the calendar.
func firstWeekPreview(sessions []*domain.ScheduledSession) []contract.SessionView {
	seen := make(map[string]bool, 7)
	var preview []contract.SessionView
	for _, sess := range sessions {
		key := sess.ScheduledDate.Format("2006-01-02")
		if !seen[key] {
			if len(seen) == 7 {
				break
			}
			seen[key] = true
		}
		preview = append(preview, contract.NewSessionView(sess))
	}
	return preview
}
