package formatter

import (
	"fmt"
	"strings"

	"github.com/danielmeier/cramplan/internal/contract"
)

const statusProgressBarWidth = 12

// FormatStatus formats a StatusResponse into the styled dashboard.
func FormatStatus(resp *contract.StatusResponse) string {
	var b strings.Builder
	today := resp.GeneratedAt

	b.WriteString(fmt.Sprintf("%s  %s\n",
		Bold(resp.Plan.Course),
		Dim(fmt.Sprintf("exam %s", resp.Plan.ExamDate.Format("Jan 2, 2006")))))
	b.WriteString(fmt.Sprintf("  Days left:   %s\n", DaysLeft(resp.Plan.DaysUntilExam)))
	b.WriteString(fmt.Sprintf("  Week plan:   %s\n", FormatHours(resp.Plan.WeeklyHours)))
	b.WriteString(fmt.Sprintf("  Coverage:    %s %s\n",
		RenderProgress(resp.CoveragePct/100, statusProgressBarWidth),
		Dim(fmt.Sprintf("%d/%d topics", resp.CompletedTopics, resp.TotalTopics))))
	if resp.Plan.HasCapacityWarning {
		b.WriteString(StyleYellow.Render("  WARNING: remaining work exceeds the time left before the exam") + "\n")
	}

	b.WriteString("\n" + Header("Today") + "\n")
	if len(resp.TodaySessions) == 0 {
		b.WriteString(Dim("  Nothing scheduled today.") + "\n")
	} else {
		b.WriteString(SessionTable(resp.TodaySessions, today))
	}

	if len(resp.UpcomingSessions) > 0 {
		b.WriteString("\n" + Header("Coming Up") + "\n")
		b.WriteString(SessionTable(resp.UpcomingSessions, today))
	}

	if resp.MissedCount > 0 {
		b.WriteString("\n" + StyleRed.Render(fmt.Sprintf("  %d missed session(s)", resp.MissedCount)) +
			Dim(" - run 'cramplan replan' to catch up") + "\n")
	}

	b.WriteString("\n" + Header("Progress") + "\n")
	b.WriteString(fmt.Sprintf("  XP:      %s\n", Bold(fmt.Sprintf("%d", resp.Profile.TotalXP))))
	b.WriteString(fmt.Sprintf("  Streak:  %s %s\n",
		StyleYellow.Render(fmt.Sprintf("%d day(s)", resp.Profile.CurrentStreak)),
		Dim(fmt.Sprintf("(best %d)", resp.Profile.LongestStreak))))
	if len(resp.Profile.BadgeIDs) > 0 {
		names := make([]string, 0, len(resp.Profile.BadgeIDs))
		for _, id := range resp.Profile.BadgeIDs {
			names = append(names, BadgeName(id))
		}
		b.WriteString(fmt.Sprintf("  Badges:  %s\n", StylePurple.Render(strings.Join(names, ", "))))
	}

	return RenderBox("Status", b.String())
}

// FormatPlanSummary renders the outcome of plan creation.
func FormatPlanSummary(summary *contract.PlanSummary) string {
	var b strings.Builder

	b.WriteString(Header("Plan Created"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Course:      %s\n", Bold(summary.Course)))
	b.WriteString(fmt.Sprintf("  Exam date:   %s (%s)\n",
		summary.ExamDate.Format("Jan 2, 2006"), DaysLeft(summary.DaysUntilExam)))
	b.WriteString(fmt.Sprintf("  Study days:  %d\n", summary.StudyDaysCount))
	b.WriteString(fmt.Sprintf("  Sessions:    %d\n", summary.TotalSessions))
	b.WriteString(fmt.Sprintf("  Workload:    %s of material in %s of study time\n",
		FormatHours(summary.TotalTopicHours), FormatHours(summary.TotalAvailableHours)))

	if summary.HasCapacityWarning {
		b.WriteString("\n" + StyleYellow.Render("  WARNING: not everything fits before the exam - some topics were dropped.") + "\n")
		b.WriteString(Dim("  Add more weekly hours or mark known topics to tighten the plan.") + "\n")
	}

	if len(summary.FirstWeekPreview) > 0 {
		b.WriteString("\n" + Header("First Week") + "\n")
		b.WriteString(SessionTable(summary.FirstWeekPreview, summary.ExamDate.AddDate(0, 0, -summary.DaysUntilExam)))
	}

	return b.String()
}
