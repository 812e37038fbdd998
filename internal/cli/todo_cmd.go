package cli

import (
	"fmt"

	"github.com/dpp0007/HackHerth/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTodoCmd(app *App, g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "List and complete tasks",
	}
	cmd.AddCommand(
		newTodoListCmd(app, g),
		newTodoDoneCmd(app, g),
	)
	return cmd
}

func newTodoListCmd(app *App, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in creation order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			todos, err := app.Journal.ListTodos(cmd.Context(), g.userID)
			if err != nil {
				return err
			}
			out := map[string]any{"todos": todos}
			return emit(cmd, app, g, out, func() string {
				return formatter.FormatTodos(todos, displayTime(now))
			})
		},
	}
}

func newTodoDoneCmd(app *App, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "done <todo id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := g.referenceTime()
			if err != nil {
				return err
			}
			if err := app.Journal.CompleteTodo(cmd.Context(), g.userID, args[0], now); err != nil {
				return err
			}
			out := map[string]any{"todo_id": args[0], "message": "Todo completed"}
			return emit(cmd, app, g, out, func() string {
				return fmt.Sprintf("%s Completed %s\n", formatter.StyleGreen.Render("✔"), formatter.TruncID(args[0]))
			})
		},
	}
}
