package cli

import (
	"strings"

	"github.com/dpp0007/HackHerth/internal/cli/formatter"
	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/spf13/cobra"
)

func newSafetyCmd(app *App, g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safety",
		Short: "Screen messages and responses for medical safety",
	}
	cmd.AddCommand(
		newSafetyCheckCmd(app, g),
		newSafetyValidateCmd(app, g),
		newSafetyReportCmd(app, g),
	)
	return cmd
}

func newSafetyCheckCmd(app *App, g *globalFlags) *cobra.Command {
	var response string

	cmd := &cobra.Command{
		Use:   "check <message>",
		Short: "Classify a user message and optionally screen a response",
		Long:  "Classify a user message. With --user the check is recorded in that user's agent log.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			res, err := app.Intelligence.SafetyCheck(cmd.Context(), service.SafetyCheckRequest{
				UserID:   g.userID,
				Message:  strings.Join(args, " "),
				Response: response,
			}, now)
			if err != nil {
				return err
			}
			out := map[string]any{
				"safety_analysis": res.SafetyAnalysis,
				"response_safety": res.ResponseSafety,
			}
			return emit(cmd, app, g, out, func() string {
				return formatter.FormatSafetyCheck(res.SafetyAnalysis, res.ResponseSafety)
			})
		},
	}

	cmd.Flags().StringVar(&response, "response", "", "Proposed agent response to screen")
	return cmd
}

func newSafetyValidateCmd(app *App, g *globalFlags) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "validate <agent response>",
		Short: "Produce the final response to send for a user message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Intelligence.ValidateResponse(cmd.Context(), message, strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := map[string]any{"validation": v}
			return emit(cmd, app, g, out, func() string {
				return formatter.FormatValidation(*v)
			})
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "The user message being answered")
	return cmd
}

func newSafetyReportCmd(app *App, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Summarize safety incidents from the agent log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			r, err := app.Intelligence.SafetyReport(cmd.Context(), g.userID, now)
			if err != nil {
				return err
			}
			out := map[string]any{"safety_report": r}
			return emit(cmd, app, g, out, func() string {
				return formatter.FormatSafetyReport(*r)
			})
		},
	}
}
