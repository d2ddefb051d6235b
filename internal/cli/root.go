package cli

import (
	"github.com/danielmeier/cramplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands, plus
// the identity of the user every command acts on behalf of.
type App struct {
	Plans    service.PlanService
	Sessions service.SessionService
	Replan   service.ReplanService
	Status   service.StatusService

	UserID string

	// IsInteractive reports whether stdin is a terminal; wizard-style
	// commands fall back to flags when it is not.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "cramplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "cramplan",
		Short: "Exam study planner for IB mathematics",
	}

	root.AddCommand(
		newPlanCmd(app),
		newSessionsCmd(app),
		newReplanCmd(app),
		newStatusCmd(app),
		newTopicsCmd(app),
	)

	return root
}
