package contract

import "github.com/danielmeier/cramplan/internal/app"

type StatusRequest = app.StatusRequest

func NewStatusRequest(userID string) StatusRequest {
	return app.NewStatusRequest(userID)
}

type StatusResponse = app.StatusResponse

type PlanOverview = app.PlanOverview

type ProfileView = app.ProfileView

type StatusErrorCode = app.StatusErrorCode

const (
	StatusErrNoActivePlan StatusErrorCode = app.StatusErrNoActivePlan
	StatusErrInternal     StatusErrorCode = app.StatusErrInternal
)

type StatusError = app.StatusError
