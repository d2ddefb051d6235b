package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danielmeier/cramplan/internal/domain"
)

var validWeekdayKeys = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

// parseWeekHours parses the --hours flag format "mon=2,wed=1.5,sat=3" into a
// weekly availability map. Days with zero hours are omitted.
func parseWeekHours(v string) (domain.WeekHours, error) {
	hours := make(domain.WeekHours)
	for _, pair := range strings.Split(v, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		day, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid hours entry %q, expected day=hours", pair)
		}
		day = strings.ToLower(strings.TrimSpace(day))
		if !validWeekdayKeys[day] {
			return nil, fmt.Errorf("unknown weekday %q, use mon..sun", day)
		}
		h, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || h < 0 || h > 24 {
			return nil, fmt.Errorf("invalid hours for %s: %q", day, value)
		}
		if h > 0 {
			hours[day] = h
		}
	}
	if len(hours) == 0 {
		return nil, fmt.Errorf("no study hours given")
	}
	return hours, nil
}

// parseHoursValue parses a single wizard hours input; empty means zero and
// anything unparseable is negative so validation rejects it.
func parseHoursValue(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	h, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return -1
	}
	return h
}
