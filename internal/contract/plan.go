package contract

import (
	"time"

	"github.com/danielmeier/cramplan/internal/app"
	"github.com/danielmeier/cramplan/internal/domain"
)

type CreatePlanRequest = app.CreatePlanRequest

func NewCreatePlanRequest(userID, course string, examDate time.Time, hours domain.WeekHours) CreatePlanRequest {
	return app.NewCreatePlanRequest(userID, course, examDate, hours)
}

type PlanSummary = app.PlanSummary

type PlanErrorCode = app.PlanErrorCode

const (
	PlanErrInvalidCourse  PlanErrorCode = app.PlanErrInvalidCourse
	PlanErrExamNotFuture  PlanErrorCode = app.PlanErrExamNotFuture
	PlanErrNoAvailability PlanErrorCode = app.PlanErrNoAvailability
	PlanErrNoTopics       PlanErrorCode = app.PlanErrNoTopics
	PlanErrNoActivePlan   PlanErrorCode = app.PlanErrNoActivePlan
	PlanErrInternal       PlanErrorCode = app.PlanErrInternal
)

type PlanError = app.PlanError
