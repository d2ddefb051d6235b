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

func newSessionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List and work through scheduled sessions",
	}

	cmd.AddCommand(
		newSessionsListCmd(app),
		newSessionsCompleteCmd(app),
		newSessionsTimerCmd(app),
		newSessionsMissedCmd(app),
		newSessionsMoveCmd(app),
		newSessionsTutorCmd(app),
	)

	return cmd
}

func newSessionsListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the active plan's sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := app.Plans.GetActive(ctx, app.UserID)
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.ListByPlan(ctx, plan.ID)
			if err != nil {
				return err
			}

			views := make([]contract.SessionView, 0, len(sessions))
			for _, s := range sessions {
				if !all && s.Status != domain.SessionPending {
					continue
				}
				views = append(views, contract.NewSessionView(s))
			}
			if len(views) == 0 {
				fmt.Println(formatter.Dim("No sessions to show."))
				return nil
			}

			fmt.Print(formatter.SessionTable(views, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed, missed and rescheduled sessions")

	return cmd
}

func newSessionsCompleteCmd(app *App) *cobra.Command {
	var confidence string
	var minutes int

	cmd := &cobra.Command{
		Use:   "complete <session-id>",
		Short: "Mark a session as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewCompleteSessionRequest(app.UserID, args[0])
			req.ActualMinutes = minutes
			if confidence != "" {
				c, err := parseConfidence(confidence)
				if err != nil {
					return err
				}
				req.Confidence = &c
			}

			result, err := app.Sessions.Complete(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatCompletion(result, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&confidence, "confidence", "", "How did it go? (low|medium|high)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Actual minutes studied (default: the estimate)")

	return cmd
}

func newSessionsMissedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "missed",
		Short: "Sweep overdue pending sessions into the missed state",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Sessions.MarkMissed(context.Background(), app.UserID, nil)
			if err != nil {
				return err
			}
			if result.MarkedCount == 0 {
				fmt.Println(formatter.Dim("Nothing overdue."))
				return nil
			}
			fmt.Printf("Marked %d session(s) as missed. Run %s to catch up.\n",
				result.MarkedCount, formatter.Bold("cramplan replan"))
			return nil
		},
	}
}

func newSessionsMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <session-id> <date>",
		Short: "Reschedule a pending session to another date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("invalid date %q, use YYYY-MM-DD", args[1])
			}

			moved, err := app.Sessions.Move(context.Background(), contract.MoveSessionRequest{
				UserID:    app.UserID,
				SessionID: args[0],
				NewDate:   date,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Moved to %s as %s.\n", date.Format("Mon Jan 2"), formatter.TruncID(moved.ID))
			return nil
		},
	}
}

func newSessionsTutorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tutor <session-id>",
		Short: "Toggle the needs-tutor-help flag on a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			needed, err := app.Sessions.ToggleTutorHelp(context.Background(), app.UserID, args[0])
			if err != nil {
				return err
			}
			if needed {
				fmt.Println("Flagged for tutor help " + formatter.StyleYellow.Render("⚑"))
			} else {
				fmt.Println("Tutor help flag cleared.")
			}
			return nil
		},
	}
}

func parseConfidence(v string) (domain.SessionConfidence, error) {
	switch domain.SessionConfidence(v) {
	case domain.SessionConfidenceLow, domain.SessionConfidenceMedium, domain.SessionConfidenceHigh:
		return domain.SessionConfidence(v), nil
	default:
		return "", fmt.Errorf("invalid confidence %q, use low, medium or high", v)
	}
}
