package scheduler

import (
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
)

// gradualWindowDays bounds the gradual policy's catch-up horizon.
const gradualWindowDays = 14

// weekendWindowDays bounds the weekend policy to the next single weekend.
const weekendWindowDays = 2

// MissedWork is one missed or deferred work item to be re-packed.
type MissedWork struct {
	TopicID   string
	TopicName string
	Minutes   int
	Kind      domain.SessionKind
}

// Commitment is minutes already promised to a pending session on a date.
// Redistribution never overbooks a day that already has scheduled work.
type Commitment struct {
	Date    time.Time
	Minutes int
}

// Redistribute re-packs missed work into study days strictly after today,
// honoring minutes already committed to other pending sessions. Unlike the
// initial packer it does not charge inter-session breaks: committed capacity
// is already net of breaks from the original schedule. The skip policy
// abandons the work and returns no sessions; under every policy, work that
// does not fit the window is silently dropped.
func Redistribute(
	missed []MissedWork,
	committed []Commitment,
	days []StudyDay,
	today time.Time,
	policy domain.RedistributePolicy,
) []PlannedSession {
	window := policyWindow(days, today, policy)

	used := make(map[string]int, len(committed))
	for _, c := range committed {
		used[DateOf(c.Date).Format(dateLayout)] += c.Minutes
	}

	var sessions []PlannedSession
	dayIdx := 0

	for _, work := range missed {
		remaining := work.Minutes

		for remaining > 0 && dayIdx < len(window) {
			day := window[dayIdx]
			key := day.Date.Format(dateLayout)
			capacity := day.EffectiveMin() - used[key]

			if capacity <= 0 {
				dayIdx++
				continue
			}

			allocated := min(remaining, MaxSessionMin, capacity)
			kind := work.Kind
			if kind == "" {
				kind = domain.KindStudy
			}
			sessions = append(sessions, PlannedSession{
				TopicID:   work.TopicID,
				TopicName: work.TopicName,
				Date:      day.Date,
				Minutes:   allocated,
				Kind:      kind,
			})

			used[key] += allocated
			remaining -= allocated

			if used[key] >= day.EffectiveMin() {
				dayIdx++
			}
		}
	}

	return sessions
}

// policyWindow selects the candidate days for a redistribution policy. All
// policies start strictly after today.
func policyWindow(days []StudyDay, today time.Time, policy domain.RedistributePolicy) []StudyDay {
	future := DaysAfter(days, today)

	switch policy {
	case domain.PolicySkip:
		return nil
	case domain.PolicyGradual:
		if len(future) > gradualWindowDays {
			future = future[:gradualWindowDays]
		}
		return future
	case domain.PolicyWeekend:
		var weekend []StudyDay
		for _, d := range future {
			if wd := d.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
				weekend = append(weekend, d)
				if len(weekend) == weekendWindowDays {
					break
				}
			}
		}
		return weekend
	default:
		return future
	}
}

// SplitWeekLoad partitions date-ordered pending sessions for the busy-week
// reduction: sessions are kept in order until the running total reaches half
// of the week's total pending minutes; the returned index is the count of
// sessions to keep, everything from it onward is deferred.
func SplitWeekLoad(sessionMinutes []int) int {
	total := 0
	for _, m := range sessionMinutes {
		total += m
	}
	if total == 0 {
		return len(sessionMinutes)
	}

	half := total / 2
	running := 0
	for i, m := range sessionMinutes {
		running += m
		if running >= half {
			return i + 1
		}
	}
	return len(sessionMinutes)
}
