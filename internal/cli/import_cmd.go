package cli

import (
	"fmt"
	"strings"

	"github.com/dpp0007/HackHerth/internal/cli/formatter"
	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <user_<id>.json>...",
		Short: "Import legacy per-user JSON files",
		Long: "Import legacy per-user JSON files. Each file is imported in its own transaction; " +
			"the first failing file stops the run.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			results := make([]*service.ImportResult, 0, len(args))
			for _, path := range args {
				r, err := app.Import.ImportUserFile(cmd.Context(), path, now)
				if err != nil {
					return fmt.Errorf("importing %s: %w", path, err)
				}
				results = append(results, r)
			}
			out := map[string]any{"imported": results}
			return emit(cmd, app, g, out, func() string {
				return formatImportResults(results)
			})
		},
	}
}

func formatImportResults(results []*service.ImportResult) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "%s Imported %s\n", formatter.StyleGreen.Render("✔"), formatter.Bold(r.UserID))
		b.WriteString(formatter.Dim(fmt.Sprintf(
			"  %d moods, %d symptoms, %d nutrition, %d tasks, %d agent events, %d feedback\n",
			r.MoodEntries, r.SymptomEntries, r.NutritionEntries, r.Todos, r.AgentEvents, r.Feedback,
		)))
	}
	return b.String()
}
