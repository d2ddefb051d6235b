package domain

import "time"

// StudyPlan is one user's plan for one course and exam date. At most one plan
// per user has IsActive set; creating a new plan deactivates the old one.
type StudyPlan struct {
	ID        string
	UserID    string
	Course    string
	ExamDate  time.Time
	Hours     WeekHours
	Slots     DaySlots // optional richer availability; Hours stays authoritative
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaysUntilExam returns whole calendar days from today to the exam date.
func (p *StudyPlan) DaysUntilExam(today time.Time) int {
	return int(p.ExamDate.Sub(today).Hours() / 24)
}

// WeeklyOverride replaces the plan's default hours map for a single ISO week,
// identified by the Monday that starts it.
type WeeklyOverride struct {
	ID        string
	UserID    string
	PlanID    string
	WeekStart time.Time
	Hours     WeekHours
	CreatedAt time.Time
}

// WeekStartOf returns the Monday of the calendar week containing d.
func WeekStartOf(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
