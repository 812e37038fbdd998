package cli

import (
	"fmt"

	"github.com/dpp0007/HackHerth/internal/cli/formatter"
	"github.com/dpp0007/HackHerth/internal/intelligence"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Detect trends, score risk and personalize suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			a, err := app.Intelligence.Analyze(cmd.Context(), g.userID, now)
			if err != nil {
				return err
			}
			out := map[string]any{"analysis": a}
			return emit(cmd, app, g, out, func() string {
				return formatter.FormatAnalysis(a.Trends, a.RiskAssessment, a.Personalization)
			})
		},
	}
}

func newPlanCmd(app *App, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the prioritized action plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			plan, err := app.Intelligence.ActionPlan(cmd.Context(), g.userID, now)
			if err != nil {
				return err
			}
			out := map[string]any{"action_plan": plan}
			return emit(cmd, app, g, out, func() string {
				return formatter.FormatActionPlan(*plan)
			})
		},
	}
}

func newReportCmd(app *App, g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a weekly, monthly or full report",
	}

	kinds := []struct {
		kind  intelligence.ReportKind
		short string
	}{
		{intelligence.ReportWeekly, "Report on the last 7 days"},
		{intelligence.ReportMonthly, "Report on the last 30 days"},
		{intelligence.ReportFull, "Report on the whole history, with learning data"},
	}
	for _, k := range kinds {
		cmd.AddCommand(newReportKindCmd(app, g, k.kind, k.short))
	}
	cmd.AddCommand(newReportSummaryCmd(app, g))
	return cmd
}

func newReportSummaryCmd(app *App, g *globalFlags) *cobra.Command {
	kind := newEnumFlag(string(intelligence.SummaryWeekly), string(intelligence.SummaryOverall))

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show entry counts, most common mood and symptom, and todo progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			s, err := app.Intelligence.Summary(cmd.Context(), intelligence.SummaryKind(kind.value), g.userID, now)
			if err != nil {
				return fmt.Errorf("summary: %w", err)
			}
			out := map[string]any{"report": s}
			return emit(cmd, app, g, out, func() string {
				return formatter.FormatSummary(*s)
			})
		},
	}

	cmd.Flags().Var(kind, "type", "Summary window (default overall)")
	return cmd
}

func newReportKindCmd(app *App, g *globalFlags, kind intelligence.ReportKind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			r, err := app.Intelligence.Report(cmd.Context(), kind, g.userID, now)
			if err != nil {
				return fmt.Errorf("%s report: %w", kind, err)
			}
			out := map[string]any{"report": r}
			return emit(cmd, app, g, out, func() string {
				return formatter.FormatReport(*r)
			})
		},
	}
}
