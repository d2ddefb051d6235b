package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/danielmeier/cramplan/internal/contract"
)

// SessionTable renders scheduled sessions as an aligned table.
func SessionTable(sessions []contract.SessionView, today time.Time) string {
	headers := []string{"ID", "DATE", "SESSION", "KIND", "TIME", "STATUS"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		name := s.DisplayName
		if s.NeedsTutorHelp {
			name += " " + StyleYellow.Render("⚑")
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			HumanDate(s.Date, today),
			StyleFg.Render(name),
			KindBadge(s.Kind),
			FormatMinutes(s.Minutes),
			StatusPill(s.Status),
		})
	}
	return RenderTable(headers, rows)
}

// FormatCompletion renders the outcome of completing a session: the XP
// breakdown, streak, any follow-ups scheduled, and newly earned badges.
func FormatCompletion(result *contract.CompletionResult, today time.Time) string {
	var b strings.Builder

	b.WriteString(Header("Session Complete"))
	b.WriteString("\n")

	if result.IsReview {
		b.WriteString(fmt.Sprintf("  XP earned:  %s %s\n",
			StyleGreen.Render(fmt.Sprintf("+%d", result.XPEarned)),
			Dim("(review)")))
	} else {
		b.WriteString(fmt.Sprintf("  XP earned:  %s\n", StyleGreen.Render(fmt.Sprintf("+%d", result.XPEarned))))
		b.WriteString(fmt.Sprintf("    Base:         %d\n", result.BaseXP))
		if result.OnTimeBonus > 0 {
			b.WriteString(fmt.Sprintf("    On time:      +%d\n", result.OnTimeBonus))
		}
		if result.StreakBonus > 0 {
			b.WriteString(fmt.Sprintf("    Streak:       +%d\n", result.StreakBonus))
		}
	}
	b.WriteString(fmt.Sprintf("  Total XP:   %s\n", Bold(fmt.Sprintf("%d", result.TotalXP))))
	b.WriteString(fmt.Sprintf("  Streak:     %s\n", StyleYellow.Render(fmt.Sprintf("%d day(s)", result.NewStreak))))

	if result.TopicMarkedKnown {
		b.WriteString("\n" + StyleGreen.Render("  Topic marked as known - it will be skipped in future plans.") + "\n")
	}

	if len(result.FollowUps) > 0 {
		b.WriteString("\n" + Dim("  Follow-ups scheduled:") + "\n")
		for _, f := range result.FollowUps {
			b.WriteString(fmt.Sprintf("    %s  %s (%s)\n",
				HumanDate(f.Date, today), f.DisplayName, FormatMinutes(f.Minutes)))
		}
	}

	for _, badge := range result.NewBadgeIDs {
		b.WriteString("\n" + StylePurple.Render(fmt.Sprintf("  ★ Badge unlocked: %s", BadgeName(badge))) + "\n")
	}

	return b.String()
}

// badgeNames maps badge IDs to display names.
var badgeNames = map[string]string{
	"first_step":    "First Step",
	"on_fire":       "On Fire",
	"week_warrior":  "Week Warrior",
	"consistent":    "Consistent",
	"topic_master":  "Topic Master",
	"halfway":       "Halfway There",
	"full_coverage": "Full Coverage",
	"early_bird":    "Early Bird",
	"night_owl":     "Night Owl",
}

// BadgeName returns the display name for a badge ID, falling back to the ID.
func BadgeName(id string) string {
	if name, ok := badgeNames[id]; ok {
		return name
	}
	return id
}
