package domain

import "time"

// Profile accumulates a user's XP and streak state. TotalXP is monotonic
// non-decreasing; it is mutated only by the completion flow.
type Profile struct {
	ID            string
	TotalXP       int
	CurrentStreak int
	LongestStreak int
	LastStudyDate *time.Time
	CreatedAt     time.Time
}

// EarnedBadge records one unlocked achievement for a user.
type EarnedBadge struct {
	ID       string
	UserID   string
	BadgeID  string
	EarnedAt time.Time
}

// TopicAssessment is the per-plan mastery rating for one topic. Completing a
// session with high confidence upgrades the topic to "known" for future plans.
type TopicAssessment struct {
	ID         string
	UserID     string
	PlanID     string
	TopicID    string
	Confidence TopicConfidence
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
