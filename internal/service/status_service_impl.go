package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/danielmeier/cramplan/internal/contract"
	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/danielmeier/cramplan/internal/repository"
	"github.com/danielmeier/cramplan/internal/scheduler"
	"github.com/danielmeier/cramplan/internal/syllabus"
)

type statusService struct {
	plans     repository.PlanRepo
	sessions  repository.SessionRepo
	profiles  repository.ProfileRepo
	badges    repository.BadgeRepo
	overrides repository.OverrideRepo
	observer  UseCaseObserver
}

func NewStatusService(
	plans repository.PlanRepo,
	sessions repository.SessionRepo,
	profiles repository.ProfileRepo,
	badges repository.BadgeRepo,
	overrides repository.OverrideRepo,
	observers ...UseCaseObserver,
) StatusService {
	return &statusService{
		plans:     plans,
		sessions:  sessions,
		profiles:  profiles,
		badges:    badges,
		overrides: overrides,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// GetStatus assembles the dashboard: plan header, today's and upcoming
// sessions, coverage, and the gamification snapshot. It is read-only.
func (s *statusService) GetStatus(ctx context.Context, req contract.StatusRequest) (resp *contract.StatusResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "status",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	plan, err := s.plans.GetActive(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.StatusError{Code: contract.StatusErrNoActivePlan, Message: "no active plan"}
		}
		return nil, err
	}

	now := resolveNow(req.Now)
	today := scheduler.DateOf(now)
	upcomingDays := req.UpcomingDays
	if upcomingDays <= 0 {
		upcomingDays = 7
	}

	sessions, err := s.sessions.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	var todaySessions, upcoming []*domain.ScheduledSession
	missedCount := 0
	var remainingMin int
	horizon := today.AddDate(0, 0, upcomingDays)
	for _, sess := range sessions {
		switch {
		case sess.Status == domain.SessionMissed:
			missedCount++
		case sess.Status != domain.SessionPending:
			continue
		case scheduler.SameDate(sess.ScheduledDate, today):
			todaySessions = append(todaySessions, sess)
		case sess.ScheduledDate.After(today) && !sess.ScheduledDate.After(horizon):
			upcoming = append(upcoming, sess)
		}
		if sess.Status == domain.SessionPending {
			remainingMin += sess.EstimatedMin
		}
	}

	completedTopics, err := s.sessions.CountUniqueCompletedTopics(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	totalTopics := len(syllabus.TopicsForCourse(syllabus.Course(plan.Course)))
	coverage := 0.0
	if totalTopics > 0 {
		coverage = math.Round(float64(completedTopics)/float64(totalTopics)*1000) / 10
	}

	weekOverrides, err := s.overrides.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	var availableMin int
	for _, d := range studyDaysForPlan(plan, weekOverrides, today) {
		availableMin += d.EffectiveMin()
	}
	availableHours := math.Round(float64(availableMin)/60*10) / 10
	remainingHours := math.Round(float64(remainingMin)/60*10) / 10

	profileView := contract.ProfileView{}
	profile, err := s.profiles.Get(ctx, req.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if profile != nil {
		profileView.TotalXP = profile.TotalXP
		profileView.CurrentStreak = profile.CurrentStreak
		profileView.LongestStreak = profile.LongestStreak
	}
	earned, err := s.badges.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	for _, b := range earned {
		profileView.BadgeIDs = append(profileView.BadgeIDs, b.BadgeID)
	}

	return &contract.StatusResponse{
		GeneratedAt: now,
		Plan: contract.PlanOverview{
			PlanID:              plan.ID,
			Course:              plan.Course,
			ExamDate:            plan.ExamDate,
			DaysUntilExam:       plan.DaysUntilExam(today),
			WeeklyHours:         plan.Hours.Total(),
			HasCapacityWarning:  availableHours < remainingHours,
			TotalAvailableHours: availableHours,
		},
		TodaySessions:    contract.NewSessionViews(todaySessions),
		UpcomingSessions: contract.NewSessionViews(upcoming),
		MissedCount:      missedCount,
		CompletedTopics:  completedTopics,
		TotalTopics:      totalTopics,
		CoveragePct:      coverage,
		Profile:          profileView,
	}, nil
}
