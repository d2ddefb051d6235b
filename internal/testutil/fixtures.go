package testutil

import (
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/google/uuid"
)

// TestUserID is the user every fixture belongs to unless overridden.
const TestUserID = "test-user"

// StudyPlan options
type PlanOption func(*domain.StudyPlan)

func WithExamDate(d time.Time) PlanOption {
	return func(p *domain.StudyPlan) {
		p.ExamDate = d
	}
}

func WithCourse(course string) PlanOption {
	return func(p *domain.StudyPlan) {
		p.Course = course
	}
}

func WithWeekHours(h domain.WeekHours) PlanOption {
	return func(p *domain.StudyPlan) {
		p.Hours = h
	}
}

func WithDaySlots(s domain.DaySlots) PlanOption {
	return func(p *domain.StudyPlan) {
		p.Slots = s
	}
}

func WithPlanUser(userID string) PlanOption {
	return func(p *domain.StudyPlan) {
		p.UserID = userID
	}
}

func WithInactive() PlanOption {
	return func(p *domain.StudyPlan) {
		p.IsActive = false
	}
}

func NewTestPlan(opts ...PlanOption) *domain.StudyPlan {
	now := time.Now().UTC()
	p := &domain.StudyPlan{
		ID:       uuid.New().String(),
		UserID:   TestUserID,
		Course:   "AA_SL",
		ExamDate: now.AddDate(0, 2, 0),
		Hours: domain.WeekHours{
			"mon": 2, "wed": 2, "sat": 3,
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ScheduledSession options
type SessionOption func(*domain.ScheduledSession)

func WithSessionDate(d time.Time) SessionOption {
	return func(s *domain.ScheduledSession) {
		s.ScheduledDate = d
	}
}

func WithSessionStatus(st domain.SessionStatus) SessionOption {
	return func(s *domain.ScheduledSession) {
		s.Status = st
	}
}

func WithSessionKind(k domain.SessionKind) SessionOption {
	return func(s *domain.ScheduledSession) {
		s.Kind = k
	}
}

func WithTopic(id, name string) SessionOption {
	return func(s *domain.ScheduledSession) {
		s.TopicID = id
		s.TopicName = name
	}
}

func WithEstimatedMin(m int) SessionOption {
	return func(s *domain.ScheduledSession) {
		s.EstimatedMin = m
	}
}

func WithParts(index, total int) SessionOption {
	return func(s *domain.ScheduledSession) {
		s.PartIndex = index
		s.PartTotal = total
	}
}

func WithSessionUser(userID string) SessionOption {
	return func(s *domain.ScheduledSession) {
		s.UserID = userID
	}
}

func NewTestSession(planID string, opts ...SessionOption) *domain.ScheduledSession {
	now := time.Now().UTC()
	s := &domain.ScheduledSession{
		ID:            uuid.New().String(),
		PlanID:        planID,
		UserID:        TestUserID,
		TopicID:       "aa_1_1",
		TopicName:     "Sequences & Series - Arithmetic",
		ScheduledDate: now.AddDate(0, 0, 1),
		EstimatedMin:  50,
		Status:        domain.SessionPending,
		Kind:          domain.KindStudy,
		CreatedAt:     now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile options
type ProfileOption func(*domain.Profile)

func WithXP(xp int) ProfileOption {
	return func(p *domain.Profile) {
		p.TotalXP = xp
	}
}

func WithStreak(current, longest int) ProfileOption {
	return func(p *domain.Profile) {
		p.CurrentStreak = current
		p.LongestStreak = longest
	}
}

func WithLastStudyDate(d time.Time) ProfileOption {
	return func(p *domain.Profile) {
		p.LastStudyDate = &d
	}
}

func NewTestProfile(opts ...ProfileOption) *domain.Profile {
	p := &domain.Profile{
		ID:        TestUserID,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestAssessment rates one topic for a plan.
func NewTestAssessment(planID, topicID string, confidence domain.TopicConfidence) *domain.TopicAssessment {
	now := time.Now().UTC()
	return &domain.TopicAssessment{
		ID:         uuid.New().String(),
		UserID:     TestUserID,
		PlanID:     planID,
		TopicID:    topicID,
		Confidence: confidence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
