package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/danielmeier/cramplan/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// StatusPill returns a colored indicator for a session status.
func StatusPill(status domain.SessionStatus) string {
	switch status {
	case domain.SessionPending:
		return StyleBlue.Render("○ Pending")
	case domain.SessionCompleted:
		return StyleGreen.Render("✔ Done")
	case domain.SessionMissed:
		return StyleRed.Render("✖ Missed")
	case domain.SessionRescheduled:
		return StyleDim.Render("↻ Moved")
	default:
		return StyleDim.Render(string(status))
	}
}

// KindBadge returns a styled label for a session kind.
func KindBadge(kind domain.SessionKind) string {
	switch kind {
	case domain.KindReview:
		return StylePurple.Render("Review")
	case domain.KindRecovery:
		return StyleYellow.Render("Recovery")
	default:
		return StyleFg.Render("Study")
	}
}

// ConfidencePill returns a colored label for a session self-rating.
func ConfidencePill(c domain.SessionConfidence) string {
	switch c {
	case domain.SessionConfidenceHigh:
		return StyleGreen.Render("● High")
	case domain.SessionConfidenceMedium:
		return StyleYellow.Render("● Medium")
	case domain.SessionConfidenceLow:
		return StyleRed.Render("● Low")
	default:
		return StyleDim.Render(string(c))
	}
}

// RenderProgress renders a progress bar like [████░░░░]  45%. The bar is
// colored by percentage: green above 66%, yellow 33-66%, red below.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t, today time.Time) string {
	switch {
	case sameDay(t, today):
		return "Today"
	case sameDay(t, today.AddDate(0, 0, 1)):
		return "Tomorrow"
	case sameDay(t, today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return t.Format("Mon Jan 2")
	}
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DaysLeft renders a countdown with urgency coloring.
func DaysLeft(days int) string {
	text := fmt.Sprintf("%d days", days)
	switch {
	case days <= 7:
		return StyleRed.Render(text)
	case days <= 21:
		return StyleYellow.Render(text)
	default:
		return StyleGreen.Render(text)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h := minutes / 60
	m := minutes % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatHours renders fractional hours compactly ("2h", "1.5h").
func FormatHours(hours float64) string {
	if hours == float64(int(hours)) {
		return fmt.Sprintf("%.0fh", hours)
	}
	return fmt.Sprintf("%.1fh", hours)
}
