package app

import (
	"time"
)

// StatusRequest asks for the dashboard view of the active plan.
type StatusRequest struct {
	UserID       string
	UpcomingDays int
	Now          *time.Time
}

func NewStatusRequest(userID string) StatusRequest {
	return StatusRequest{
		UserID:       userID,
		UpcomingDays: 7,
	}
}

// PlanOverview summarizes the active plan for the status header.
type PlanOverview struct {
	PlanID              string
	Course              string
	ExamDate            time.Time
	DaysUntilExam       int
	WeeklyHours         float64
	HasCapacityWarning  bool
	TotalAvailableHours float64
}

// ProfileView is the gamification snapshot shown alongside the schedule.
type ProfileView struct {
	TotalXP       int
	CurrentStreak int
	LongestStreak int
	BadgeIDs      []string
}

// StatusResponse is the full dashboard payload.
type StatusResponse struct {
	GeneratedAt      time.Time
	Plan             PlanOverview
	TodaySessions    []SessionView
	UpcomingSessions []SessionView
	MissedCount      int
	CompletedTopics  int
	TotalTopics      int
	CoveragePct      float64
	Profile          ProfileView
}

type StatusErrorCode string

const (
	StatusErrNoActivePlan StatusErrorCode = "NO_ACTIVE_PLAN"
	StatusErrInternal     StatusErrorCode = "INTERNAL_ERROR"
)

type StatusError struct {
	Code    StatusErrorCode
	Message string
}

func (e *StatusError) Error() string {
	return string(e.Code) + ": " + e.Message
}
