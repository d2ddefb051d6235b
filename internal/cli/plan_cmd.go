package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/danielmeier/cramplan/internal/cli/formatter"
	"github.com/danielmeier/cramplan/internal/contract"
	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Create and inspect study plans",
	}

	cmd.AddCommand(
		newPlanCreateCmd(app),
		newPlanShowCmd(app),
		newPlanResetCmd(app),
	)

	return cmd
}

func newPlanCreateCmd(app *App) *cobra.Command {
	var course, examDate, hoursFlag string
	var knownTopics []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new study plan (replaces the active one)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req contract.CreatePlanRequest

			// The wizard runs when no flags were given on a terminal;
			// flags always win so scripting stays possible.
			if course == "" && app.interactive() {
				var answers planWizardAnswers
				if err := runPlanWizard(&answers); err != nil {
					return err
				}
				req = contract.NewCreatePlanRequest(app.UserID, answers.Course, answers.ExamDate, answers.Hours)
				req.Assessments = knownAssessments(answers.KnownTopics)
			} else {
				if course == "" || examDate == "" || hoursFlag == "" {
					return fmt.Errorf("--course, --exam and --hours are required (or run on a terminal for the wizard)")
				}
				exam, err := time.Parse("2006-01-02", examDate)
				if err != nil {
					return fmt.Errorf("invalid exam date %q, use YYYY-MM-DD", examDate)
				}
				hours, err := parseWeekHours(hoursFlag)
				if err != nil {
					return err
				}
				req = contract.NewCreatePlanRequest(app.UserID, course, exam, hours)
				req.Assessments = knownAssessments(knownTopics)
			}

			summary, err := app.Plans.CreatePlan(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatPlanSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "Course code (AA_HL|AA_SL|AI_HL|AI_SL)")
	cmd.Flags().StringVar(&examDate, "exam", "", "Exam date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&hoursFlag, "hours", "", "Weekly hours, e.g. mon=2,wed=1.5,sat=3")
	cmd.Flags().StringSliceVar(&knownTopics, "known", nil, "Topic IDs to skip as already known")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Plans.GetActive(context.Background(), app.UserID)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Active Plan"))
			fmt.Printf("  ID:        %s\n", formatter.TruncID(plan.ID))
			fmt.Printf("  Course:    %s\n", formatter.Bold(plan.Course))
			fmt.Printf("  Exam:      %s\n", plan.ExamDate.Format("Jan 2, 2006"))
			fmt.Printf("  Per week:  %s\n", formatter.FormatHours(plan.Hours.Total()))
			for _, day := range []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"} {
				if h, ok := plan.Hours[day]; ok {
					fmt.Printf("    %s  %s\n", day, formatter.FormatHours(h))
				}
			}
			return nil
		},
	}
}

func newPlanResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Deactivate the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.Reset(context.Background(), app.UserID); err != nil {
				return err
			}
			fmt.Printf("Plan deactivated. Run %s to start over.\n", formatter.Bold("cramplan plan create"))
			return nil
		},
	}
}

// knownAssessments rates the given topics as already known.
func knownAssessments(topicIDs []string) map[string]domain.TopicConfidence {
	if len(topicIDs) == 0 {
		return nil
	}
	out := make(map[string]domain.TopicConfidence, len(topicIDs))
	for _, id := range topicIDs {
		out[id] = domain.ConfidenceKnown
	}
	return out
}
