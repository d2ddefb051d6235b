package scheduler

import (
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
)

// maxHorizonDays caps calendar iteration as a runaway-loop guard.
const maxHorizonDays = 365

// StudyDay is one concrete calendar date carrying configured study hours.
// Dates are normalized to midnight UTC throughout the scheduler.
type StudyDay struct {
	Date  time.Time
	Hours float64
}

// EffectiveMin is the day's usable study capacity in minutes.
func (d StudyDay) EffectiveMin() int {
	return EffectiveStudyMinutes(d.Hours)
}

// DateOf truncates a timestamp to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two timestamps fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// BuildStudyDays expands a weekly availability pattern into the ordered list
// of concrete dates in [start, examDate] whose weekday has hours configured.
// Zero-hour days are omitted entirely. Returns an empty list when the exam
// date precedes the start; iteration is capped at one year.
func BuildStudyDays(hours domain.WeekHours, start, examDate time.Time) []StudyDay {
	return BuildStudyDaysFunc(start, examDate, func(d time.Time) float64 {
		return hours.HoursOn(d.Weekday())
	})
}

// BuildStudyDaysFunc is BuildStudyDays with a per-date hours function, for
// callers whose availability varies by week rather than by weekday alone.
func BuildStudyDaysFunc(start, examDate time.Time, hoursOn func(time.Time) float64) []StudyDay {
	var days []StudyDay
	d := DateOf(start)
	end := DateOf(examDate)
	if end.Before(d) {
		return days
	}

	for count := 0; !d.After(end) && count < maxHorizonDays; count++ {
		if h := hoursOn(d); h > 0 {
			days = append(days, StudyDay{Date: d, Hours: h})
		}
		d = d.AddDate(0, 0, 1)
	}
	return days
}

// DaysAfter filters a day list to dates strictly after the given date.
func DaysAfter(days []StudyDay, date time.Time) []StudyDay {
	cutoff := DateOf(date)
	var out []StudyDay
	for _, d := range days {
		if d.Date.After(cutoff) {
			out = append(out, d)
		}
	}
	return out
}

// FindNextAvailableDate returns the first study day on or after
// fromDate+daysAhead that is not in the past relative to today. The second
// return is false when no such day exists before the exam date.
func FindNextAvailableDate(hours domain.WeekHours, examDate, fromDate time.Time, daysAhead int, today time.Time) (time.Time, bool) {
	target := DateOf(fromDate).AddDate(0, 0, daysAhead)
	floor := DateOf(today)
	if target.Before(floor) {
		target = floor
	}
	for _, d := range BuildStudyDays(hours, today, examDate) {
		if !d.Date.Before(target) {
			return d.Date, true
		}
	}
	return time.Time{}, false
}
