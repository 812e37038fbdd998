package cli

import (
	"time"

	"github.com/dpp0007/HackHerth/internal/cli/formatter"
	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App, g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update pregnancy details",
	}
	cmd.AddCommand(
		newProfileShowCmd(app, g),
		newProfileSetCmd(app, g),
	)
	return cmd
}

func newProfileShowCmd(app *App, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			p, err := app.Journal.GetProfile(cmd.Context(), g.userID, now)
			if err != nil {
				return err
			}
			return emitProfile(cmd, app, g, p)
		},
	}
}

var profileFlags = []string{"week", "trimester", "due-date", "lmp", "allergy", "food-pref"}

func newProfileSetCmd(app *App, g *globalFlags) *cobra.Command {
	var (
		week, trimester      int
		dueDate, lmp         string
		allergies, foodPrefs []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Long: "Update profile fields. A due date or LMP recomputes the current week and trimester.\n" +
			"Without flags on a terminal, opens a form prefilled with the stored profile.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}

			var upd service.ProfileUpdate
			flags := cmd.Flags()
			if flags.Changed("week") {
				upd.CurrentWeek = &week
			}
			if flags.Changed("trimester") {
				upd.Trimester = &trimester
			}
			if flags.Changed("due-date") {
				upd.DueDate = &dueDate
			}
			if flags.Changed("lmp") {
				upd.LMP = &lmp
			}
			if flags.Changed("allergy") {
				upd.Allergies = allergies
			}
			if flags.Changed("food-pref") {
				upd.FoodPreferences = foodPrefs
			}

			if !anyChanged(flags, profileFlags...) && app.canPrompt() {
				if upd, err = promptProfile(cmd, app, g, now); err != nil {
					return err
				}
			}

			p, err := app.Journal.UpdateProfile(cmd.Context(), g.userID, upd, now)
			if err != nil {
				return err
			}
			return emitProfile(cmd, app, g, p)
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Current pregnancy week (0-42)")
	cmd.Flags().IntVar(&trimester, "trimester", 0, "Trimester (1-3)")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&lmp, "lmp", "", "Last menstrual period (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&allergies, "allergy", nil, "Allergy (repeatable, replaces the list)")
	cmd.Flags().StringSliceVar(&foodPrefs, "food-pref", nil, "Food preference (repeatable, replaces the list)")

	return cmd
}

func promptProfile(cmd *cobra.Command, app *App, g *globalFlags, now time.Time) (service.ProfileUpdate, error) {
	current, err := app.Journal.GetProfile(cmd.Context(), g.userID, now)
	if err != nil {
		return service.ProfileUpdate{}, err
	}
	v := newProfileFormValues(current)
	if err := app.fillForm(cmd, v); err != nil {
		return service.ProfileUpdate{}, err
	}
	return v.update()
}

func emitProfile(cmd *cobra.Command, app *App, g *globalFlags, p *domain.Profile) error {
	out := map[string]any{"user_id": g.userID, "profile": p}
	return emit(cmd, app, g, out, func() string {
		return formatter.FormatProfile(g.userID, p)
	})
}
