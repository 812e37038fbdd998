package cli

import (
	"fmt"

	"github.com/dpp0007/HackHerth/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App, g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage companion sessions",
	}
	cmd.AddCommand(newSessionStartCmd(app, g))
	return cmd
}

func newSessionStartCmd(app *App, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a session for a new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			userID, err := app.Journal.StartSession(cmd.Context(), now)
			if err != nil {
				return err
			}
			out := map[string]string{"user_id": userID, "message": "Session started"}
			return emit(cmd, app, g, out, func() string {
				return fmt.Sprintf("%s Session started\n  User: %s\n", formatter.StyleGreen.Render("✔"), formatter.Bold(userID))
			})
		},
	}
}
