package contract

import "github.com/danielmeier/cramplan/internal/app"

type CompleteSessionRequest = app.CompleteSessionRequest

func NewCompleteSessionRequest(userID, sessionID string) CompleteSessionRequest {
	return app.NewCompleteSessionRequest(userID, sessionID)
}

type CompletionResult = app.CompletionResult

type MoveSessionRequest = app.MoveSessionRequest

type MarkMissedResult = app.MarkMissedResult

type SessionErrorCode = app.SessionErrorCode

const (
	SessionErrNotFound         SessionErrorCode = app.SessionErrNotFound
	SessionErrNotOwned         SessionErrorCode = app.SessionErrNotOwned
	SessionErrAlreadyCompleted SessionErrorCode = app.SessionErrAlreadyCompleted
	SessionErrInvalidDate      SessionErrorCode = app.SessionErrInvalidDate
	SessionErrInternal         SessionErrorCode = app.SessionErrInternal
)

type SessionError = app.SessionError
