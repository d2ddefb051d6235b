package app

import (
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
)

// CreatePlanRequest carries everything needed to build a new study plan.
// Today is injected by the caller; when nil the service uses the wall clock.
type CreatePlanRequest struct {
	UserID      string
	Course      string
	ExamDate    time.Time
	Hours       domain.WeekHours
	Slots       domain.DaySlots
	Assessments map[string]domain.TopicConfidence
	Today       *time.Time
}

func NewCreatePlanRequest(userID, course string, examDate time.Time, hours domain.WeekHours) CreatePlanRequest {
	return CreatePlanRequest{
		UserID:   userID,
		Course:   course,
		ExamDate: examDate,
		Hours:    hours,
	}
}

// PlanSummary reports the outcome of plan creation. A capacity shortfall is
// carried as a flag, never an error: the plan is created either way.
type PlanSummary struct {
	PlanID              string
	Course              string
	ExamDate            time.Time
	DaysUntilExam       int
	StudyDaysCount      int
	TotalSessions       int
	TotalTopicHours     float64
	TotalAvailableHours float64
	HasCapacityWarning  bool
	FirstWeekPreview    []SessionView
}

type PlanErrorCode string

const (
	PlanErrInvalidCourse  PlanErrorCode = "INVALID_COURSE"
	PlanErrExamNotFuture  PlanErrorCode = "EXAM_NOT_FUTURE"
	PlanErrNoAvailability PlanErrorCode = "NO_AVAILABILITY"
	PlanErrNoTopics       PlanErrorCode = "NO_TOPICS"
	PlanErrNoActivePlan   PlanErrorCode = "NO_ACTIVE_PLAN"
	PlanErrInternal       PlanErrorCode = "INTERNAL_ERROR"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
