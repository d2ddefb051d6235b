package service

import (
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/danielmeier/cramplan/internal/scheduler"
)

// resolveNow picks the injected clock when the request carries one. Services
// never read the wall clock mid-operation; every date decision in one call
// uses the same instant.
func resolveNow(injected *time.Time) time.Time {
	if injected != nil {
		return injected.UTC()
	}
	return time.Now().UTC()
}

// studyDaysForPlan expands the plan's weekly pattern into dated study days
// from start to the exam, substituting recorded weekly overrides for the
// weeks they cover.
func studyDaysForPlan(plan *domain.StudyPlan, overrides []*domain.WeeklyOverride, start time.Time) []scheduler.StudyDay {
	if len(overrides) == 0 {
		return scheduler.BuildStudyDays(plan.Hours, start, plan.ExamDate)
	}

	byWeek := make(map[string]domain.WeekHours, len(overrides))
	for _, o := range overrides {
		byWeek[o.WeekStart.Format("2006-01-02")] = o.Hours
	}

	days := scheduler.BuildStudyDaysFunc(start, plan.ExamDate, func(d time.Time) float64 {
		if hours, ok := byWeek[domain.WeekStartOf(d).Format("2006-01-02")]; ok {
			return hours.HoursOn(d.Weekday())
		}
		return plan.Hours.HoursOn(d.Weekday())
	})
	return days
}

// commitmentsFromSessions projects pending sessions into the capacity
// commitments the redistribution packer must respect.
func commitmentsFromSessions(sessions []*domain.ScheduledSession) []scheduler.Commitment {
	commitments := make([]scheduler.Commitment, 0, len(sessions))
	for _, s := range sessions {
		if s.Status != domain.SessionPending {
			continue
		}
		commitments = append(commitments, scheduler.Commitment{
			Date:    s.ScheduledDate,
			Minutes: s.EstimatedMin,
		})
	}
	return commitments
}

// missedWorkFromSessions converts missed sessions, in date order, into the
// work items the redistribution packer consumes.
func missedWorkFromSessions(sessions []*domain.ScheduledSession) []scheduler.MissedWork {
	work := make([]scheduler.MissedWork, 0, len(sessions))
	for _, s := range sessions {
		work = append(work, scheduler.MissedWork{
			TopicID:   s.TopicID,
			TopicName: s.TopicName,
			Minutes:   s.EstimatedMin,
			Kind:      s.Kind,
		})
	}
	return work
}

// fullyPlacedCount reports how many leading work items were fully covered by
// the placed sessions. Placement is strictly in work order, so work item k is
// covered iff the cumulative placed minutes reach the cumulative requirement
// through k.
func fullyPlacedCount(work []scheduler.MissedWork, placed []scheduler.PlannedSession) int {
	var placedMin int
	for _, p := range placed {
		placedMin += p.Minutes
	}

	covered := 0
	var required int
	for _, w := range work {
		required += w.Minutes
		if placedMin < required {
			break
		}
		covered++
	}
	return covered
}
