package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/nhle/schedule/internal/logging"
)

type DoneCmd struct {
	flags *Flags
	app   *App

	undo bool
}

// NewDoneCmd creates a new done command
func NewDoneCmd(flags *Flags, app *App) *DoneCmd {
	return &DoneCmd{flags: flags, app: app}
}

// Register adds the done command to the application
func (cmd *DoneCmd) Register(a *cli.Command) *cli.Command {
	a.Commands = append(a.Commands, &cli.Command{
		Name:      "done",
		Usage:     "Mark a task completed",
		UsageText: "schedule done <n> [--undo]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "undo",
				Usage:       "mark the task not completed",
				Destination: &cmd.undo,
			},
		},
		Action: cmd.run,
	})
	return a
}

func (cmd *DoneCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "done")

	i, err := position(c)
	if err != nil {
		return err
	}
	if err := cmd.app.Tracker.SetCompleted(ctx, i, !cmd.undo); err != nil {
		return fmt.Errorf("task %d: %w", i+1, err)
	}
	log.Debug().Ctx(ctx).Int("n", i+1).Bool("completed", !cmd.undo).Msg("task updated")

	state := "completed"
	if cmd.undo {
		state = "not completed"
	}
	_, _ = fmt.Fprintf(c.Root().Writer, "Task %d marked %s\n", i+1, state)
	return nil
}
