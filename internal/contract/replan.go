package contract

import "github.com/danielmeier/cramplan/internal/app"

type RedistributeRequest = app.RedistributeRequest

func NewRedistributeRequest(userID string) RedistributeRequest {
	return app.NewRedistributeRequest(userID)
}

type RedistributeResult = app.RedistributeResult

type ReduceWeekRequest = app.ReduceWeekRequest

type ReduceWeekResult = app.ReduceWeekResult

type ReplanErrorCode = app.ReplanErrorCode

const (
	ReplanErrNoActivePlan  ReplanErrorCode = app.ReplanErrNoActivePlan
	ReplanErrInvalidPolicy ReplanErrorCode = app.ReplanErrInvalidPolicy
	ReplanErrNothingToDo   ReplanErrorCode = app.ReplanErrNothingToDo
	ReplanErrInternal      ReplanErrorCode = app.ReplanErrInternal
)

type ReplanError = app.ReplanError
