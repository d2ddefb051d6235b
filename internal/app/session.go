package app

import (
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
)

// CompleteSessionRequest finishes one scheduled session. Confidence is the
// optional self-rating that drives follow-up scheduling; ActualMinutes is the
// measured study time when a timer ran, 0 to fall back to the estimate.
type CompleteSessionRequest struct {
	UserID        string
	SessionID     string
	Confidence    *domain.SessionConfidence
	ActualMinutes int
	Now           *time.Time
}

func NewCompleteSessionRequest(userID, sessionID string) CompleteSessionRequest {
	return CompleteSessionRequest{
		UserID:    userID,
		SessionID: sessionID,
	}
}

// CompletionResult itemizes everything one completion changed.
type CompletionResult struct {
	XPEarned         int
	BaseXP           int
	OnTimeBonus      int
	StreakBonus      int
	IsReview         bool
	NewStreak        int
	TotalXP          int
	NewBadgeIDs      []string
	FollowUps        []SessionView
	TopicMarkedKnown bool
}

// MoveSessionRequest reschedules one pending session to a new date.
type MoveSessionRequest struct {
	UserID    string
	SessionID string
	NewDate   time.Time
	Now       *time.Time
}

// MarkMissedResult reports the overdue sweep outcome.
type MarkMissedResult struct {
	MarkedCount int
}

type SessionErrorCode string

const (
	SessionErrNotFound         SessionErrorCode = "SESSION_NOT_FOUND"
	SessionErrNotOwned         SessionErrorCode = "SESSION_NOT_OWNED"
	SessionErrAlreadyCompleted SessionErrorCode = "ALREADY_COMPLETED"
	SessionErrInvalidDate      SessionErrorCode = "INVALID_DATE"
	SessionErrInternal         SessionErrorCode = "INTERNAL_ERROR"
)

type SessionError struct {
	Code    SessionErrorCode
	Message string
}

func (e *SessionError) Error() string {
	return string(e.Code) + ": " + e.Message
}
