package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/danielmeier/cramplan/internal/cli/formatter"
	"github.com/danielmeier/cramplan/internal/contract"
	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionsTimerCmd(app *App) *cobra.Command {
	var confidence string

	cmd := &cobra.Command{
		Use:   "timer <session-id>",
		Short: "Run a countdown for a session, then complete it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the timer needs a terminal; use 'sessions complete' instead")
			}

			ctx := context.Background()
			view, err := findSessionView(ctx, app, args[0])
			if err != nil {
				return err
			}
			if view.Status != domain.SessionPending {
				return fmt.Errorf("session is %s, only pending sessions can be timed", view.Status)
			}

			model := newTimerModel(*view)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}

			done := final.(timerModel)
			minutes := int(done.elapsed().Minutes())
			if minutes < 1 {
				fmt.Println(formatter.Dim("Timer abandoned, session left pending."))
				return nil
			}

			req := contract.NewCompleteSessionRequest(app.UserID, view.ID)
			req.ActualMinutes = minutes
			if confidence != "" {
				c, err := parseConfidence(confidence)
				if err != nil {
					return err
				}
				req.Confidence = &c
			}

			result, err := app.Sessions.Complete(ctx, req)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatCompletion(result, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&confidence, "confidence", "", "How did it go? (low|medium|high)")

	return cmd
}

// findSessionView resolves a session ID, or a unique prefix of at least 8
// characters, within the active plan.
func findSessionView(ctx context.Context, app *App, id string) (*contract.SessionView, error) {
	plan, err := app.Plans.GetActive(ctx, app.UserID)
	if err != nil {
		return nil, err
	}
	sessions, err := app.Sessions.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if s.ID == id || (len(id) >= 8 && len(s.ID) >= len(id) && s.ID[:len(id)] == id) {
			view := contract.NewSessionView(s)
			return &view, nil
		}
	}
	return nil, fmt.Errorf("no session %q in the active plan", id)
}

// timerModel is the bubbletea countdown shown while a session runs. Space
// pauses, q or esc stops; time spent paused does not count as studying.
type timerModel struct {
	session  contract.SessionView
	total    time.Duration
	timer    timer.Model
	progress progress.Model
	done     bool
}

func newTimerModel(session contract.SessionView) timerModel {
	total := time.Duration(session.Minutes) * time.Minute
	return timerModel{
		session: session,
		total:   total,
		timer:   timer.NewWithInterval(total, time.Second),
		progress: progress.New(
			progress.WithSolidFill("#8ec07c"),
			progress.WithWidth(24),
			progress.WithoutPercentage(),
		),
	}
}

func (m timerModel) elapsed() time.Duration {
	return m.total - m.timer.Timeout
}

func (m timerModel) Init() tea.Cmd {
	return m.timer.Init()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			return m, m.timer.Toggle()
		case "q", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m timerModel) View() string {
	if m.done {
		return ""
	}

	pct := 1.0
	if m.total > 0 {
		pct = float64(m.elapsed()) / float64(m.total)
	}

	state := formatter.StyleGreen.Render("studying")
	if !m.timer.Running() {
		state = formatter.StyleYellow.Render("paused")
	}

	remaining := m.timer.Timeout
	mins := int(remaining.Minutes())
	secs := int(remaining.Seconds()) % 60

	return fmt.Sprintf("\n  %s\n\n  %s  %02d:%02d left  %s\n\n  %s\n",
		formatter.Bold(m.session.DisplayName),
		m.progress.ViewAs(pct),
		mins, secs,
		state,
		formatter.Dim("space pause · q stop"))
}
