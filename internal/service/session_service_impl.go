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

type sessionService struct {
	sessions repository.SessionRepo
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSessionService(
	sessions repository.SessionRepo,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) SessionService {
	return &sessionService{
		sessions: sessions,
		plans:    plans,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Complete finishes one pending session: it awards XP, advances the streak,
// records a study log, schedules the confidence-driven follow-ups, and
// evaluates badges. Everything commits in one transaction; a second attempt
// on the same session fails with ALREADY_COMPLETED and changes nothing.
func (s *sessionService) Complete(ctx context.Context, req contract.CompleteSessionRequest) (result *contract.CompletionResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"session_id": req.SessionID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "complete-session",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	now := resolveNow(req.Now)
	today := scheduler.DateOf(now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txPlans := repository.NewSQLitePlanRepo(tx)
		txProfiles := repository.NewSQLiteProfileRepo(tx)
		txLogs := repository.NewSQLiteStudyLogRepo(tx)
		txBadges := repository.NewSQLiteBadgeRepo(tx)
		txAssessments := repository.NewSQLiteAssessmentRepo(tx)

		session, err := txSessions.GetByID(ctx, req.SessionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &contract.SessionError{Code: contract.SessionErrNotFound, Message: "no such session"}
			}
			return err
		}
		if session.UserID != req.UserID {
			return &contract.SessionError{Code: contract.SessionErrNotOwned, Message: "session belongs to another user"}
		}

		// Repeat exposure to an already-completed topic is a review, as is
		// any session that is itself a follow-up kind.
		priorCompletions, err := txSessions.CountCompletedForTopic(ctx, req.UserID, session.TopicID)
		if err != nil {
			return err
		}
		isReview := priorCompletions > 0 || session.Kind != domain.KindStudy

		profile, err := txProfiles.Get(ctx, req.UserID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			profile = &domain.Profile{ID: req.UserID, CreatedAt: now}
		}

		// The streak bonus uses the streak as it stood before this
		// completion; the streak itself advances afterwards.
		isOnTime := scheduler.SameDate(session.ScheduledDate, now)
		xp := scheduler.CalculateXP(session.TopicID, isOnTime, profile.CurrentStreak, isReview)

		if err := txSessions.MarkCompleted(ctx, session.ID, now, xp.Total); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return &contract.SessionError{Code: contract.SessionErrAlreadyCompleted, Message: "session is no longer pending"}
			}
			if errors.Is(err, repository.ErrNotFound) {
				return &contract.SessionError{Code: contract.SessionErrNotFound, Message: "no such session"}
			}
			return err
		}

		newStreak := scheduler.NextStreak(profile.LastStudyDate, now, profile.CurrentStreak)
		profile.TotalXP += xp.Total
		profile.CurrentStreak = newStreak
		profile.LongestStreak = max(profile.LongestStreak, newStreak)
		profile.LastStudyDate = &today
		if err := txProfiles.Upsert(ctx, profile); err != nil {
			return err
		}

		minutes := req.ActualMinutes
		if minutes <= 0 {
			minutes = session.EstimatedMin
		}
		log := &domain.StudyLog{
			ID:                 uuid.New().String(),
			UserID:             req.UserID,
			ScheduledSessionID: session.ID,
			DurationMin:        minutes,
			StartedAt:          now.Add(-time.Duration(minutes) * time.Minute),
			EndedAt:            now,
			XPEarned:           xp.Total,
			Confidence:         req.Confidence,
			CreatedAt:          now,
		}
		if err := txLogs.Create(ctx, log); err != nil {
			return err
		}

		plan, err := txPlans.GetByID(ctx, session.PlanID)
		if err != nil {
			return err
		}

		followUps, markedKnown, err := s.applyConfidence(ctx, tx, session, plan, req.Confidence, now)
		if err != nil {
			return err
		}
		if markedKnown {
			a := &domain.TopicAssessment{
				ID:         uuid.New().String(),
				UserID:     req.UserID,
				PlanID:     plan.ID,
				TopicID:    session.TopicID,
				Confidence: domain.ConfidenceKnown,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := txAssessments.Upsert(ctx, a); err != nil {
				return err
			}
		}

		uniqueTopics, err := txSessions.CountUniqueCompletedTopics(ctx, req.UserID)
		if err != nil {
			return err
		}
		earnedList, err := txBadges.ListByUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		earned := make(map[string]bool, len(earnedList))
		for _, b := range earnedList {
			earned[b.BadgeID] = true
		}
		newBadges := scheduler.NewBadges(scheduler.BadgeContext{
			Streak:                newStreak,
			UniqueCompletedTopics: uniqueTopics,
			TotalTopicsInCourse:   len(syllabus.TopicsForCourse(syllabus.Course(plan.Course))),
			SessionHour:           now.Hour(),
		}, earned)
		for _, badgeID := range newBadges {
			b := &domain.EarnedBadge{
				ID:       uuid.New().String(),
				UserID:   req.UserID,
				BadgeID:  badgeID,
				EarnedAt: now,
			}
			if err := txBadges.Create(ctx, b); err != nil {
				return err
			}
		}

		result = &contract.CompletionResult{
			XPEarned:         xp.Total,
			BaseXP:           xp.Base,
			OnTimeBonus:      xp.OnTimeBonus,
			StreakBonus:      xp.StreakBonus,
			IsReview:         isReview,
			NewStreak:        newStreak,
			TotalXP:          profile.TotalXP,
			NewBadgeIDs:      newBadges,
			FollowUps:        contract.NewSessionViews(followUps),
			TopicMarkedKnown: markedKnown,
		}
		fields["xp_earned"] = xp.Total
		fields["new_badges"] = len(newBadges)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyConfidence schedules the follow-up sessions a self-rating calls for:
// low confidence earns a near-term recovery session, medium and high earn
// spaced reviews, and high additionally marks the topic as known. Recovery
// lands exactly three days out regardless of the availability map; reviews
// fall on the next study day at or after their offset and are omitted when
// none remains before the exam.
func (s *sessionService) applyConfidence(
	ctx context.Context,
	tx db.DBTX,
	session *domain.ScheduledSession,
	plan *domain.StudyPlan,
	confidence *domain.SessionConfidence,
	now time.Time,
) ([]*domain.ScheduledSession, bool, error) {
	if confidence == nil {
		return nil, false, nil
	}

	type followUpSpec struct {
		daysAhead int
		minutes   int
		kind      domain.SessionKind
	}
	var specs []followUpSpec
	markedKnown := false

	switch *confidence {
	case domain.SessionConfidenceLow:
		specs = []followUpSpec{
			{scheduler.RecoveryOffsetDays, scheduler.RecoverySessionMin, domain.KindRecovery},
		}
	case domain.SessionConfidenceMedium:
		specs = []followUpSpec{
			{scheduler.FirstReviewOffsetDays, scheduler.FirstReviewSessionMin, domain.KindReview},
			{scheduler.SecondReviewOffsetDays, scheduler.SecondReviewSessionMin, domain.KindReview},
		}
	case domain.SessionConfidenceHigh:
		markedKnown = true
		specs = []followUpSpec{
			{scheduler.FirstReviewOffsetDays, scheduler.FirstReviewSessionMin, domain.KindReview},
			{scheduler.SecondReviewOffsetDays, scheduler.SecondReviewSessionMin, domain.KindReview},
		}
	default:
		return nil, false, nil
	}

	txSessions := repository.NewSQLiteSessionRepo(tx)
	var created []*domain.ScheduledSession
	for _, spec := range specs {
		var date time.Time
		if spec.kind == domain.KindRecovery {
			date = scheduler.DateOf(now).AddDate(0, 0, spec.daysAhead)
		} else {
			var ok bool
			date, ok = scheduler.FindNextAvailableDate(plan.Hours, plan.ExamDate, now, spec.daysAhead, now)
			if !ok {
				continue
			}
		}
		follow := &domain.ScheduledSession{
			ID:            uuid.New().String(),
			PlanID:        session.PlanID,
			UserID:        session.UserID,
			TopicID:       session.TopicID,
			TopicName:     session.TopicName,
			ScheduledDate: date,
			EstimatedMin:  spec.minutes,
			Status:        domain.SessionPending,
			Kind:          spec.kind,
			CreatedAt:     now,
		}
		if err := txSessions.Create(ctx, follow); err != nil {
			return nil, false, err
		}
		created = append(created, follow)
	}
	return created, markedKnown, nil
}

func (s *sessionService) ListByPlan(ctx context.Context, planID string) ([]*domain.ScheduledSession, error) {
	return s.sessions.ListByPlan(ctx, planID)
}

// MarkMissed sweeps pending sessions scheduled before today into the missed
// state for the user's active plan.
func (s *sessionService) MarkMissed(ctx context.Context, userID string, now *time.Time) (*contract.MarkMissedResult, error) {
	plan, err := s.plans.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.SessionError{Code: contract.SessionErrNotFound, Message: "no active plan"}
		}
		return nil, err
	}

	today := scheduler.DateOf(resolveNow(now))
	count, err := s.sessions.MarkMissedBefore(ctx, plan.ID, today)
	if err != nil {
		return nil, fmt.Errorf("marking missed sessions: %w", err)
	}
	return &contract.MarkMissedResult{MarkedCount: count}, nil
}

// Move reschedules one pending session to another date. The moved row flips
// to rescheduled and the work carries on as a brand-new pending session on
// the target date; the target must not be in the past, and completed and
// missed sessions stay where history put them.
func (s *sessionService) Move(ctx context.Context, req contract.MoveSessionRequest) (*domain.ScheduledSession, error) {
	session, err := s.sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.SessionError{Code: contract.SessionErrNotFound, Message: "no such session"}
		}
		return nil, err
	}
	if session.UserID != req.UserID {
		return nil, &contract.SessionError{Code: contract.SessionErrNotOwned, Message: "session belongs to another user"}
	}
	if session.Status != domain.SessionPending {
		return nil, &contract.SessionError{Code: contract.SessionErrAlreadyCompleted, Message: fmt.Sprintf("cannot move a %s session", session.Status)}
	}

	now := resolveNow(req.Now)
	today := scheduler.DateOf(now)
	newDate := scheduler.DateOf(req.NewDate)
	if newDate.Before(today) {
		return nil, &contract.SessionError{Code: contract.SessionErrInvalidDate, Message: "target date is in the past"}
	}

	replacement := &domain.ScheduledSession{
		ID:             uuid.New().String(),
		PlanID:         session.PlanID,
		UserID:         session.UserID,
		TopicID:        session.TopicID,
		TopicName:      session.TopicName,
		ScheduledDate:  newDate,
		EstimatedMin:   session.EstimatedMin,
		Status:         domain.SessionPending,
		Kind:           session.Kind,
		PartIndex:      session.PartIndex,
		PartTotal:      session.PartTotal,
		NeedsTutorHelp: session.NeedsTutorHelp,
		CreatedAt:      now,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		if err := txSessions.UpdateStatus(ctx, session.ID, domain.SessionRescheduled); err != nil {
			return err
		}
		return txSessions.Create(ctx, replacement)
	})
	if err != nil {
		return nil, err
	}
	return replacement, nil
}

// ToggleTutorHelp flips the tutor-help flag and returns the new value.
func (s *sessionService) ToggleTutorHelp(ctx context.Context, userID, sessionID string) (bool, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, &contract.SessionError{Code: contract.SessionErrNotFound, Message: "no such session"}
		}
		return false, err
	}
	if session.UserID != userID {
		return false, &contract.SessionError{Code: contract.SessionErrNotOwned, Message: "session belongs to another user"}
	}

	needed := !session.NeedsTutorHelp
	if err := s.sessions.SetTutorHelp(ctx, sessionID, needed); err != nil {
		return false, err
	}
	return needed, nil
}
