package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/danielmeier/cramplan/internal/cli/formatter"
	"github.com/danielmeier/cramplan/internal/domain"
	"github.com/danielmeier/cramplan/internal/syllabus"
)

// cramplanHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func cramplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planWizardAnswers collects everything the onboarding wizard asks for.
type planWizardAnswers struct {
	Course      string
	ExamDate    time.Time
	Hours       domain.WeekHours
	KnownTopics []string
}

// runPlanWizard walks the user through course, exam date, weekly hours and a
// topic self-assessment. Topics selected as known are excluded from the plan.
func runPlanWizard(answers *planWizardAnswers) error {
	courseOptions := []huh.Option[string]{
		huh.NewOption("Analysis & Approaches HL", "AA_HL"),
		huh.NewOption("Analysis & Approaches SL", "AA_SL"),
		huh.NewOption("Applications & Interpretation HL", "AI_HL"),
		huh.NewOption("Applications & Interpretation SL", "AI_SL"),
	}

	var examInput string
	hourInputs := make(map[string]*string)
	weekdays := []struct {
		key   string
		label string
	}{
		{"mon", "Monday"}, {"tue", "Tuesday"}, {"wed", "Wednesday"},
		{"thu", "Thursday"}, {"fri", "Friday"}, {"sat", "Saturday"}, {"sun", "Sunday"},
	}

	hourFields := make([]huh.Field, 0, len(weekdays))
	for _, wd := range weekdays {
		v := new(string)
		hourInputs[wd.key] = v
		hourFields = append(hourFields, huh.NewInput().
			Title(wd.label).
			Placeholder("0").
			Validate(validateHoursInput).
			Value(v))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which course are you taking?").
				Options(courseOptions...).
				Value(&answers.Course),
			huh.NewInput().
				Title("When is your exam? (YYYY-MM-DD)").
				Placeholder("2026-05-04").
				Validate(validateDateInput).
				Value(&examInput),
		),
		huh.NewGroup(hourFields...).
			Title("Hours available per weekday").
			Description("Leave a day empty for no study time."),
	).WithTheme(cramplanHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	answers.ExamDate, _ = time.Parse("2006-01-02", examInput)
	answers.Hours = make(domain.WeekHours)
	for key, v := range hourInputs {
		if h := parseHoursValue(*v); h > 0 {
			answers.Hours[key] = h
		}
	}

	// Self-assessment: ticking a topic marks it as already known.
	topics := syllabus.TopicsForCourse(syllabus.Course(answers.Course))
	topicOptions := make([]huh.Option[string], 0, len(topics))
	for _, topic := range topics {
		topicOptions = append(topicOptions, huh.NewOption(topic.Name, topic.ID))
	}

	assessment := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which topics do you already know well?").
				Description("These are skipped; everything else is scheduled.").
				Options(topicOptions...).
				Value(&answers.KnownTopics),
		),
	).WithTheme(cramplanHuhTheme()).WithShowHelp(false)

	return assessment.Run()
}

func validateDateInput(v string) error {
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateHoursInput(v string) error {
	if v == "" {
		return nil
	}
	h := parseHoursValue(v)
	if h < 0 || h > 24 {
		return fmt.Errorf("hours must be between 0 and 24")
	}
	return nil
}
