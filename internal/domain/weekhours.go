package domain

import "time"

// weekdayKeys maps time.Weekday ordinals (Sunday = 0) to the short names used
// as keys in availability maps and in the stored JSON representation.
var weekdayKeys = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// WeekdayKey returns the canonical short key ("mon", "tue", ...) for a weekday.
func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[int(d)]
}

// WeekHours is a recurring weekly availability pattern: hours of study time
// per weekday, keyed by the canonical short names.
type WeekHours map[string]float64

// HoursOn returns the configured hours for the given weekday, 0 if unset.
func (w WeekHours) HoursOn(d time.Weekday) float64 {
	return w[WeekdayKey(d)]
}

// Total returns the sum of hours across the whole week.
func (w WeekHours) Total() float64 {
	var sum float64
	for _, key := range weekdayKeys {
		sum += w[key]
	}
	return sum
}

// Halved returns a copy of the pattern with every day's hours halved.
func (w WeekHours) Halved() WeekHours {
	out := make(WeekHours, len(w))
	for _, key := range weekdayKeys {
		if h, ok := w[key]; ok {
			out[key] = h / 2
		}
	}
	return out
}

// DaySlot is an explicit time-of-day availability window ("HH:MM" pair).
type DaySlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySlots maps weekday keys to explicit time-of-day windows. It is an
// optional richer representation; the scheduler only ever consumes WeekHours.
type DaySlots map[string][]DaySlot

// Minutes returns the slot's duration in minutes, 0 for malformed input.
func (s DaySlot) Minutes() int {
	start, ok1 := parseClock(s.Start)
	end, ok2 := parseClock(s.End)
	if !ok1 || !ok2 || end <= start {
		return 0
	}
	return end - start
}

// Collapse sums slot durations per weekday into an hours map. It is a pure
// helper for callers that capture availability as time-of-day windows.
func (s DaySlots) Collapse() WeekHours {
	out := make(WeekHours, len(weekdayKeys))
	for _, key := range weekdayKeys {
		var minutes int
		for _, slot := range s[key] {
			minutes += slot.Minutes()
		}
		if minutes > 0 {
			out[key] = float64(minutes) / 60
		}
	}
	return out
}

func parseClock(v string) (int, bool) {
	if len(v) != 5 || v[2] != ':' {
		return 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if v[i] < '0' || v[i] > '9' {
			return 0, false
		}
	}
	h := int(v[0]-'0')*10 + int(v[1]-'0')
	m := int(v[3]-'0')*10 + int(v[4]-'0')
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
