package domain

import (
	"fmt"
	"time"
)

// ScheduledSession is one bounded block of work on one topic on one date.
// Split-part indices and the session kind are structured fields; display
// strings are derived at the presentation boundary, never parsed back.
type ScheduledSession struct {
	ID             string
	PlanID         string
	UserID         string
	TopicID        string
	TopicName      string
	ScheduledDate  time.Time
	EstimatedMin   int
	Status         SessionStatus
	Kind           SessionKind
	PartIndex      int // 1-based when the topic was split, 0 otherwise
	PartTotal      int
	CompletedAt    *time.Time
	XPEarned       int
	NeedsTutorHelp bool
	CreatedAt      time.Time
}

// DisplayName renders the user-facing session title: a "Review:" prefix for
// follow-up kinds and a part suffix for split topics.
func (s *ScheduledSession) DisplayName() string {
	name := s.TopicName
	if s.PartTotal > 1 {
		name = fmt.Sprintf("%s (Part %d/%d)", name, s.PartIndex, s.PartTotal)
	}
	if s.Kind == KindReview || s.Kind == KindRecovery {
		return "Review: " + name
	}
	return name
}

// IsSplit reports whether this session is one part of a split topic.
func (s *ScheduledSession) IsSplit() bool {
	return s.PartTotal > 1
}

// StudyLog records an actually-performed study session for a scheduled
// session: real elapsed minutes and the self-reported confidence, if any.
type StudyLog struct {
	ID                 string
	UserID             string
	ScheduledSessionID string
	DurationMin        int
	StartedAt          time.Time
	EndedAt            time.Time
	XPEarned           int
	Confidence         *SessionConfidence
	CreatedAt          time.Time
}
