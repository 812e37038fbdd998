package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dpp0007/HackHerth/internal/cli/formatter"
	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/spf13/cobra"
)

// errFormCancelled is returned when the user quits a form.
var errFormCancelled = errors.New("cancelled")

// formValues is a set of answers collected by one huh form.
type formValues interface {
	form() *huh.Form
}

// canPrompt reports whether missing input may be collected with a form.
func (a *App) canPrompt() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// fillForm runs the form for v on the command's streams.
func (a *App) fillForm(cmd *cobra.Command, v formValues) error {
	run := a.runForm
	if run == nil {
		run = runHuhForm
	}
	if err := run(cmd, v); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errFormCancelled
		}
		return err
	}
	return nil
}

func runHuhForm(cmd *cobra.Command, v formValues) error {
	return v.form().
		WithProgramOptions(tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.ErrOrStderr())).
		RunWithContext(cmd.Context())
}

// argsOrForm requires at least one positional argument unless a form can
// collect it instead.
func argsOrForm(app *App) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && app.canPrompt() {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	}
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).
		WithTheme(hackherthHuhTheme()).
		WithKeyMap(hackherthKeyMap()).
		WithShowHelp(false)
}

func hackherthHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// hackherthKeyMap lets esc abandon a form as well as ctrl+c.
func hackherthKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	return km
}

// --- Validators ---

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalWeek accepts empty or a week in 0..42.
func validateOptionalWeek(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 42 {
		return fmt.Errorf("enter a week between 0 and 42")
	}
	return nil
}

func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validateOptionalDate)
}

// --- Entry forms ---

var moodSuggestions = []string{"happy", "calm", "excited", "tired", "anxious", "stressed", "sad"}

type moodFormValues struct {
	State string
	Notes string
}

func (v *moodFormValues) form() *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().
			Title("How are you feeling?").
			Placeholder("calm").
			Suggestions(moodSuggestions).
			Value(&v.State).
			Validate(validateRequired),
		huh.NewInput().
			Title("Notes (optional)").
			Value(&v.Notes),
	))
}

type symptomFormValues struct {
	Symptom   string
	Severity  string
	Emergency bool
}

func (v *symptomFormValues) form() *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().
			Title("Symptom").
			Placeholder("nausea").
			Value(&v.Symptom).
			Validate(validateRequired),
		huh.NewSelect[string]().
			Title("Severity").
			Options(
				huh.NewOption("Mild", string(domain.SeverityMild)),
				huh.NewOption("Moderate", string(domain.SeverityModerate)),
				huh.NewOption("Severe", string(domain.SeveritySevere)),
			).
			Value(&v.Severity),
		huh.NewConfirm().
			Title("Is this an emergency?").
			Affirmative("Yes").
			Negative("No").
			Value(&v.Emergency),
	))
}

type nutritionFormValues struct {
	Query    string
	Unsafe   bool
	Allergen bool
}

func (v *nutritionFormValues) form() *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().
			Title("Which food?").
			Placeholder("soft cheese").
			Value(&v.Query).
			Validate(validateRequired),
		huh.NewConfirm().
			Title("Was it judged unsafe?").
			Affirmative("Yes").
			Negative("No").
			Value(&v.Unsafe),
		huh.NewConfirm().
			Title("Did it trigger an allergen warning?").
			Affirmative("Yes").
			Negative("No").
			Value(&v.Allergen),
	))
}

type todoFormValues struct {
	Task     string
	Priority string
	Due      string
}

func (v *todoFormValues) form() *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().
			Title("Task").
			Placeholder("book anatomy scan").
			Value(&v.Task).
			Validate(validateRequired),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("Low", string(domain.PriorityLow)),
				huh.NewOption("Medium", string(domain.PriorityMedium)),
				huh.NewOption("High", string(domain.PriorityHigh)),
			).
			Value(&v.Priority),
		dateInput("Due Date (YYYY-MM-DD, blank for today)", &v.Due),
	))
}

// --- Profile form ---

// profileFormValues starts from the stored profile; update sends only the
// fields the user changed.
type profileFormValues struct {
	Week      string
	DueDate   string
	LMP       string
	Allergies string
	FoodPrefs string

	orig profileFormSnapshot
}

type profileFormSnapshot struct {
	week, dueDate, lmp, allergies, foodPrefs string
}

func newProfileFormValues(p *domain.Profile) *profileFormValues {
	v := &profileFormValues{
		DueDate:   p.DueDate,
		LMP:       p.LMP,
		Allergies: strings.Join(p.Allergies, ", "),
		FoodPrefs: strings.Join(p.FoodPreferences, ", "),
	}
	if p.CurrentWeek > 0 {
		v.Week = strconv.Itoa(p.CurrentWeek)
	}
	v.orig = profileFormSnapshot{v.Week, v.DueDate, v.LMP, v.Allergies, v.FoodPrefs}
	return v
}

func (v *profileFormValues) form() *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current week (blank to derive from dates)").
				Placeholder("20").
				Value(&v.Week).
				Validate(validateOptionalWeek),
			dateInput("Due Date (YYYY-MM-DD)", &v.DueDate),
			dateInput("Last menstrual period (YYYY-MM-DD)", &v.LMP),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Allergies (comma separated)").
				Value(&v.Allergies),
			huh.NewInput().
				Title("Food preferences (comma separated)").
				Value(&v.FoodPrefs),
		),
	)
}

func (v *profileFormValues) update() (service.ProfileUpdate, error) {
	var upd service.ProfileUpdate
	if v.Week != v.orig.week && v.Week != "" {
		week, err := strconv.Atoi(v.Week)
		if err != nil {
			return upd, fmt.Errorf("invalid week %q", v.Week)
		}
		upd.CurrentWeek = &week
	}
	if v.DueDate != v.orig.dueDate {
		upd.DueDate = &v.DueDate
	}
	if v.LMP != v.orig.lmp {
		upd.LMP = &v.LMP
	}
	if v.Allergies != v.orig.allergies {
		upd.Allergies = splitList(v.Allergies)
	}
	if v.FoodPrefs != v.orig.foodPrefs {
		upd.FoodPreferences = splitList(v.FoodPrefs)
	}
	return upd, nil
}

// splitList splits a comma separated answer, dropping blanks. An empty
// answer clears the list.
func splitList(s string) []string {
	out := []string{}
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
