package app

import (
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
)

// RedistributeRequest re-packs missed sessions into future days under a
// catch-up policy.
type RedistributeRequest struct {
	UserID string
	Policy domain.RedistributePolicy
	Now    *time.Time
}

func NewRedistributeRequest(userID string) RedistributeRequest {
	return RedistributeRequest{
		UserID: userID,
		Policy: domain.PolicyDefault,
	}
}

// RedistributeResult reports how missed work was re-placed. Every missed
// source flips to rescheduled; Rescheduled counts the replacement sessions
// created and Dropped the sources whose work found no room in the policy
// window. The skip policy drops everything and creates no replacements.
type RedistributeResult struct {
	Policy           domain.RedistributePolicy
	MissedCount      int
	RescheduledCount int
	DroppedCount     int
	Sessions         []SessionView
}

// ReduceWeekRequest halves the current week's load for a busy week.
type ReduceWeekRequest struct {
	UserID string
	Now    *time.Time
}

// ReduceWeekResult reports the busy-week reduction outcome.
type ReduceWeekResult struct {
	WeekStart        time.Time
	KeptCount        int
	DeferredCount    int
	RescheduledCount int
	DroppedCount     int
}

type ReplanErrorCode string

const (
	ReplanErrNoActivePlan  ReplanErrorCode = "NO_ACTIVE_PLAN"
	ReplanErrInvalidPolicy ReplanErrorCode = "INVALID_POLICY"
	ReplanErrNothingToDo   ReplanErrorCode = "NOTHING_TO_DO"
	ReplanErrInternal      ReplanErrorCode = "INTERNAL_ERROR"
)

type ReplanError struct {
	Code    ReplanErrorCode
	Message string
}

func (e *ReplanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
