package app

import (
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
)

// SessionView is a presentation-ready projection of one scheduled session.
// DisplayName is derived from structured fields at this boundary; nothing
// ever parses it back.
type SessionView struct {
	ID             string
	Date           time.Time
	TopicID        string
	DisplayName    string
	Minutes        int
	Status         domain.SessionStatus
	Kind           domain.SessionKind
	PartIndex      int
	PartTotal      int
	NeedsTutorHelp bool
}

// NewSessionView projects a domain session for display.
func NewSessionView(s *domain.ScheduledSession) SessionView {
	return SessionView{
		ID:             s.ID,
		Date:           s.ScheduledDate,
		TopicID:        s.TopicID,
		DisplayName:    s.DisplayName(),
		Minutes:        s.EstimatedMin,
		Status:         s.Status,
		Kind:           s.Kind,
		PartIndex:      s.PartIndex,
		PartTotal:      s.PartTotal,
		NeedsTutorHelp: s.NeedsTutorHelp,
	}
}

// NewSessionViews projects a slice of sessions in order.
func NewSessionViews(sessions []*domain.ScheduledSession) []SessionView {
	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, NewSessionView(s))
	}
	return views
}
