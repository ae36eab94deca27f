package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nhle/schedule/internal/logging"
)

type DeleteCmd struct {
	flags *Flags
	app   *App
}

// NewDeleteCmd creates a new delete command
func NewDeleteCmd(flags *Flags, app *App) *DeleteCmd {
	return &DeleteCmd{flags: flags, app: app}
}

// Register adds the delete command to the application
func (cmd *DeleteCmd) Register(a *cli.Command) *cli.Command {
	a.Commands = append(a.Commands, &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a task",
		UsageText: "schedule delete <n>",
		Action:    cmd.run,
	})
	return a
}

func (cmd *DeleteCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "delete")

	i, err := position(c)
	if err != nil {
		return err
	}
	task, err := cmd.app.Tracker.At(i)
	if err != nil {
		return fmt.Errorf("task %d: %w", i+1, err)
	}
	if err := cmd.app.Tracker.Delete(ctx, i); err != nil {
		return fmt.Errorf("delete task %d: %w", i+1, err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Deleted task %d: %s\n", i+1, task.Activity)
	return nil
}
