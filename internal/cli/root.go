package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dpp0007/HackHerth/internal/config"
	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/dpp0007/HackHerth/internal/metrics"
	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Journal      service.JournalService
	Intelligence service.IntelligenceService
	Import       service.ImportService
	Metrics      *metrics.Metrics
	Config       config.Config
	Logger       *slog.Logger

	// IsInteractive reports whether stdout is a terminal. Nil means piped,
	// which selects JSON output and disables forms.
	IsInteractive func() bool

	// runForm replaces the huh runner in tests.
	runForm func(cmd *cobra.Command, v formValues) error
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	json   bool
	now    string
	userID string
}

// NewRootCmd creates the top-level "hackherth" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "hackherth",
		Short:         "Pregnancy companion journal and intelligence engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&g.json, "json", false, "Force JSON output")
	pf.StringVar(&g.now, "now", "", "Reference time (RFC3339 or YYYY-MM-DD), default current time")
	pf.StringVarP(&g.userID, "user", "u", "", "User ID")

	root.AddCommand(
		newSessionCmd(app, g),
		newProfileCmd(app, g),
		newLogCmd(app, g),
		newTodoCmd(app, g),
		newAnalyzeCmd(app, g),
		newPlanCmd(app, g),
		newReportCmd(app, g),
		newSafetyCmd(app, g),
		newImportCmd(app, g),
		newServeCmd(app),
	)

	return root
}

// referenceTime returns the --now override, or zero to let services use
// the current time.
func (g *globalFlags) referenceTime() (time.Time, error) {
	if g.now == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, g.now); err == nil {
		return t.UTC(), nil
	}
	t, err := domain.ParseDate(g.now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: expected RFC3339 or YYYY-MM-DD", g.now)
	}
	return t, nil
}

// displayTime is the clock used for relative labels in pretty output.
func displayTime(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now().UTC()
	}
	return now
}

// emit writes v as indented JSON when --json is set or stdout is piped,
// otherwise the pretty rendering.
func emit(cmd *cobra.Command, app *App, g *globalFlags, v any, pretty func() string) error {
	w := cmd.OutOrStdout()
	if g.json || app.IsInteractive == nil || !app.IsInteractive() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(w, pretty())
	return err
}
