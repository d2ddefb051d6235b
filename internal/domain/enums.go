package domain

type SessionStatus string

const (
	SessionPending     SessionStatus = "pending"
	SessionCompleted   SessionStatus = "completed"
	SessionMissed      SessionStatus = "missed"
	SessionRescheduled SessionStatus = "rescheduled"
)

type SessionKind string

const (
	KindStudy    SessionKind = "study"
	KindReview   SessionKind = "review"
	KindRecovery SessionKind = "recovery"
)

// TopicConfidence is the per-topic mastery self-rating taken at onboarding.
// "known" excludes the topic from scheduling, "needs_work" halves its hours,
// "new" uses the full estimate.
type TopicConfidence string

const (
	ConfidenceKnown     TopicConfidence = "known"
	ConfidenceNeedsWork TopicConfidence = "needs_work"
	ConfidenceNew       TopicConfidence = "new"
)

// SessionConfidence is the self-rating reported when completing a session.
type SessionConfidence string

const (
	SessionConfidenceLow    SessionConfidence = "low"
	SessionConfidenceMedium SessionConfidence = "medium"
	SessionConfidenceHigh   SessionConfidence = "high"
)

// RedistributePolicy selects how missed work is re-packed into future days.
type RedistributePolicy string

const (
	PolicyDefault RedistributePolicy = "default"
	PolicyGradual RedistributePolicy = "gradual"
	PolicyWeekend RedistributePolicy = "weekend"
	PolicySkip    RedistributePolicy = "skip"
)

// ValidRedistributePolicies is the canonical set of accepted policy strings.
var ValidRedistributePolicies = map[string]bool{
	"default": true, "gradual": true, "weekend": true, "skip": true,
}
