package cli

import (
	"cmp"
	"strings"

	"github.com/dpp0007/HackHerth/internal/cli/formatter"
	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App, g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record journal entries",
	}
	cmd.AddCommand(
		newLogMoodCmd(app, g),
		newLogSymptomCmd(app, g),
		newLogNutritionCmd(app, g),
		newLogTodoCmd(app, g),
		newLogFeedbackCmd(app, g),
	)
	return cmd
}

func newLogMoodCmd(app *App, g *globalFlags) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "mood <emotional state>",
		Short: "Log how you are feeling",
		Args:  argsOrForm(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			in := service.MoodInput{EmotionalState: strings.Join(args, " "), Notes: notes}
			if len(args) == 0 {
				v := &moodFormValues{Notes: notes}
				if err := app.fillForm(cmd, v); err != nil {
					return err
				}
				in = service.MoodInput{EmotionalState: v.State, Notes: v.Notes}
			}
			entry, err := app.Journal.LogMood(cmd.Context(), g.userID, in, now)
			if err != nil {
				return err
			}
			return emitEntry(cmd, app, g, entry, "mood", entry.ID, entry.Week)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newLogSymptomCmd(app *App, g *globalFlags) *cobra.Command {
	var (
		emergency bool
		response  string
	)
	severity := newEnumFlag(string(domain.SeverityMild), string(domain.SeverityModerate), string(domain.SeveritySevere))

	cmd := &cobra.Command{
		Use:   "symptom <symptom>",
		Short: "Log a physical symptom",
		Args:  argsOrForm(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			in := service.SymptomInput{
				Symptom:       strings.Join(args, " "),
				Severity:      domain.SymptomSeverity(severity.value),
				IsEmergency:   emergency,
				AgentResponse: response,
			}
			if len(args) == 0 {
				v := &symptomFormValues{
					Severity:  cmp.Or(severity.value, string(domain.SeverityModerate)),
					Emergency: emergency,
				}
				if err := app.fillForm(cmd, v); err != nil {
					return err
				}
				in.Symptom = v.Symptom
				in.Severity = domain.SymptomSeverity(v.Severity)
				in.IsEmergency = v.Emergency
			}
			entry, err := app.Journal.LogSymptom(cmd.Context(), g.userID, in, now)
			if err != nil {
				return err
			}
			return emitEntry(cmd, app, g, entry, "symptom", entry.ID, entry.Week)
		},
	}

	cmd.Flags().Var(severity, "severity", "Symptom severity (default moderate)")
	cmd.Flags().BoolVar(&emergency, "emergency", false, "Mark as an emergency")
	cmd.Flags().StringVar(&response, "response", "", "Agent response shown to the user")
	return cmd
}

func newLogNutritionCmd(app *App, g *globalFlags) *cobra.Command {
	var (
		unsafe   bool
		allergen bool
		response string
	)

	cmd := &cobra.Command{
		Use:   "nutrition <food query>",
		Short: "Log a food safety question",
		Args:  argsOrForm(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			if len(args) == 0 {
				v := &nutritionFormValues{Unsafe: unsafe, Allergen: allergen}
				if err := app.fillForm(cmd, v); err != nil {
					return err
				}
				query, unsafe, allergen = v.Query, v.Unsafe, v.Allergen
			}
			isSafe := !unsafe
			entry, err := app.Journal.LogNutrition(cmd.Context(), g.userID, service.NutritionInput{
				FoodQuery:       query,
				IsSafe:          &isSafe,
				AllergenWarning: allergen,
				AgentResponse:   response,
			}, now)
			if err != nil {
				return err
			}
			return emitEntry(cmd, app, g, entry, "nutrition query", entry.ID, entry.Week)
		},
	}

	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "The food was judged unsafe")
	cmd.Flags().BoolVar(&allergen, "allergen", false, "The food triggered an allergen warning")
	cmd.Flags().StringVar(&response, "response", "", "Agent response shown to the user")
	return cmd
}

func newLogTodoCmd(app *App, g *globalFlags) *cobra.Command {
	var due string
	priority := newEnumFlag(string(domain.PriorityLow), string(domain.PriorityMedium), string(domain.PriorityHigh))

	cmd := &cobra.Command{
		Use:   "todo <task>",
		Short: "Add a task",
		Args:  argsOrForm(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			in := service.TodoInput{
				Task:     strings.Join(args, " "),
				Priority: domain.Priority(priority.value),
				DueDate:  due,
			}
			if len(args) == 0 {
				v := &todoFormValues{
					Priority: cmp.Or(priority.value, string(domain.PriorityMedium)),
					Due:      due,
				}
				if err := app.fillForm(cmd, v); err != nil {
					return err
				}
				in = service.TodoInput{Task: v.Task, Priority: domain.Priority(v.Priority), DueDate: v.Due}
			}
			entry, err := app.Journal.AddTodo(cmd.Context(), g.userID, in, now)
			if err != nil {
				return err
			}
			return emitEntry(cmd, app, g, entry, "task", entry.ID, entry.Week)
		},
	}

	cmd.Flags().Var(priority, "priority", "Task priority (default medium)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, default today)")
	return cmd
}

func newLogFeedbackCmd(app *App, g *globalFlags) *cobra.Command {
	var (
		helpful bool
		note    string
	)

	cmd := &cobra.Command{
		Use:   "feedback <suggestion id>",
		Short: "Record whether a suggestion helped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			entry, err := app.Journal.RecordFeedback(cmd.Context(), g.userID, service.FeedbackInput{
				SuggestionID: args[0],
				WasHelpful:   helpful,
				UserFeedback: note,
			}, now)
			if err != nil {
				return err
			}
			return emitEntry(cmd, app, g, entry, "feedback", entry.ID, entry.Week)
		},
	}

	cmd.Flags().BoolVar(&helpful, "helpful", false, "The suggestion was helpful")
	cmd.Flags().StringVar(&note, "note", "", "Free-form feedback")
	return cmd
}

func emitEntry(cmd *cobra.Command, app *App, g *globalFlags, entry any, kind, id string, week int) error {
	out := map[string]any{"entry": entry}
	return emit(cmd, app, g, out, func() string {
		return formatter.FormatLogged(kind, id, week)
	})
}
