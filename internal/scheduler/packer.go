package scheduler

import (
	"math"
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
)

const dateLayout = "2006-01-02"

// PlannedSession is a session produced by the packer, not yet persisted.
// Split parts and the session kind are structured fields; any display string
// is derived at the presentation boundary.
type PlannedSession struct {
	TopicID   string
	TopicName string
	Date      time.Time
	Minutes   int
	PartIndex int
	PartTotal int
	Kind      domain.SessionKind
}

// ScheduleResult carries the packed sessions plus the capacity accounting the
// caller surfaces to the user. A capacity shortfall is a warning, never an
// error: the schedule is best-effort and excess work is simply not placed.
type ScheduleResult struct {
	Sessions            []PlannedSession
	TotalTopicHours     float64
	TotalAvailableHours float64
	HasCapacityWarning  bool
}

// BuildSchedule greedily packs the ordered work list into the ordered day
// list. Topics are split across sessions when their remaining minutes exceed
// one day's remaining capacity or MaxSessionMin; a 10-minute break is charged
// after each session that leaves capacity behind it on the same day. Work
// that does not fit before the last day is dropped, which the capacity
// warning accounts for. Output is fully deterministic for fixed inputs.
func BuildSchedule(work []TopicWork, days []StudyDay) ScheduleResult {
	var totalTopicHours float64
	for _, w := range work {
		totalTopicHours += w.EffectiveHours
	}

	// The running capacity is the day's raw minutes; break deduction below is
	// what turns raw time into the effective study minutes the availability
	// accounting reports.
	var totalAvailableMin int
	capacity := make(map[string]int, len(days))
	for _, d := range days {
		capacity[d.Date.Format(dateLayout)] = int(d.Hours * 60)
		totalAvailableMin += d.EffectiveMin()
	}
	totalAvailableHours := math.Round(float64(totalAvailableMin)/60*10) / 10

	var sessions []PlannedSession
	dayIdx := 0

	for _, topic := range work {
		remaining := topic.Minutes()
		totalParts := (remaining + MaxSessionMin - 1) / MaxSessionMin
		part := 0

		for remaining > 0 && dayIdx < len(days) {
			key := days[dayIdx].Date.Format(dateLayout)
			if capacity[key] <= 0 {
				dayIdx++
				continue
			}

			allocated := min(remaining, MaxSessionMin, capacity[key])
			part++

			s := PlannedSession{
				TopicID:   topic.TopicID,
				TopicName: topic.TopicName,
				Date:      days[dayIdx].Date,
				Minutes:   allocated,
				Kind:      domain.KindStudy,
			}
			if totalParts > 1 {
				s.PartIndex = part
				s.PartTotal = totalParts
			}
			sessions = append(sessions, s)

			capacity[key] -= allocated
			if capacity[key] > 0 {
				capacity[key] = max(0, capacity[key]-BreakMin)
			}
			remaining -= allocated

			if capacity[key] <= 0 {
				dayIdx++
			}
		}
	}

	return ScheduleResult{
		Sessions:            sessions,
		TotalTopicHours:     totalTopicHours,
		TotalAvailableHours: totalAvailableHours,
		HasCapacityWarning:  totalAvailableHours < totalTopicHours,
	}
}
