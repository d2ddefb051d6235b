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

func newReplanCmd(app *App) *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "replan",
		Short: "Re-pack missed sessions into future days",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewRedistributeRequest(app.UserID)
			if cmd.Flags().Changed("policy") {
				req.Policy = domain.RedistributePolicy(policy)
			}

			result, err := app.Replan.Redistribute(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Replan Results"))
			fmt.Printf("  Policy:       %s\n", string(result.Policy))
			fmt.Printf("  Missed:       %d\n", result.MissedCount)
			fmt.Printf("  Rescheduled:  %s\n", formatter.StyleGreen.Render(fmt.Sprintf("%d", result.RescheduledCount)))
			if result.DroppedCount > 0 {
				fmt.Printf("  Dropped:      %s\n", formatter.StyleRed.Render(fmt.Sprintf("%d", result.DroppedCount)))
			}
			fmt.Println()

			if len(result.Sessions) > 0 {
				fmt.Print(formatter.SessionTable(result.Sessions, time.Now()))
			} else if result.Policy == domain.PolicySkip {
				fmt.Println(formatter.Dim("  Missed work abandoned; nothing was rescheduled."))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "default", "Catch-up policy (default|gradual|weekend|skip)")

	cmd.AddCommand(newReduceWeekCmd(app))

	return cmd
}

func newReduceWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reduce-week",
		Short: "Halve this week's load and push the rest out",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Replan.ReduceWeek(context.Background(), contract.ReduceWeekRequest{
				UserID: app.UserID,
			})
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Busy Week Reduction"))
			fmt.Printf("  Week of:      %s\n", result.WeekStart.Format("Jan 2"))
			fmt.Printf("  Kept:         %d session(s)\n", result.KeptCount)
			fmt.Printf("  Deferred:     %d session(s)\n", result.DeferredCount)
			fmt.Printf("  Rescheduled:  %s\n", formatter.StyleGreen.Render(fmt.Sprintf("%d", result.RescheduledCount)))
			if result.DroppedCount > 0 {
				fmt.Printf("  Dropped:      %s\n", formatter.StyleRed.Render(fmt.Sprintf("%d", result.DroppedCount)))
			}
			fmt.Println(formatter.Dim("  This week's availability is halved for future replans."))
			return nil
		},
	}
}
