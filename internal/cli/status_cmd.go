package cli

import (
	"context"
	"fmt"

	"github.com/danielmeier/cramplan/internal/cli/formatter"
	"github.com/danielmeier/cramplan/internal/contract"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var upcomingDays int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the study dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewStatusRequest(app.UserID)
			if cmd.Flags().Changed("days") {
				req.UpcomingDays = upcomingDays
			}

			resp, err := app.Status.GetStatus(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatStatus(resp))
			return nil
		},
	}

	cmd.Flags().IntVar(&upcomingDays, "days", 7, "How many days ahead to show")

	return cmd
}
