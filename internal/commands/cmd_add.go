package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/nhle/schedule/internal/logging"
	"github.com/nhle/schedule/internal/model"
	"github.com/nhle/schedule/internal/schedule"
)

type AddCmd struct {
	flags *Flags
	app   *App

	draft schedule.Draft
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(a *cli.Command) *cli.Command {
	a.Commands = append(a.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: `schedule add --start 09:00 --end 10:00 --activity "Standup" --category Work [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "date",
				Usage:       "day of the task, YYYY-MM-DD (defaults to today)",
				Destination: &cmd.draft.Date,
			},
			&cli.StringFlag{
				Name:        "start",
				Usage:       "start time, HH:MM",
				Required:    true,
				Destination: &cmd.draft.StartTime,
			},
			&cli.StringFlag{
				Name:        "end",
				Usage:       "end time, HH:MM",
				Required:    true,
				Destination: &cmd.draft.EndTime,
			},
			&cli.StringFlag{
				Name:        "activity",
				Aliases:     []string{"a"},
				Usage:       "what the task is",
				Required:    true,
				Destination: &cmd.draft.Activity,
			},
			&cli.StringFlag{
				Name:        "category",
				Usage:       "category the task is filed under",
				Required:    true,
				Destination: &cmd.draft.Category,
			},
			&cli.StringFlag{
				Name:        "note",
				Usage:       "free text note (markdown)",
				Destination: &cmd.draft.Note,
			},
			&cli.BoolFlag{
				Name:        "deadline",
				Usage:       "count down to the date",
				Destination: &cmd.draft.IsDeadline,
			},
			&cli.StringFlag{
				Name:        "color",
				Usage:       "row color, #rrggbb (defaults to display.default_color)",
				Destination: &cmd.draft.Color,
			},
			&cli.IntFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       fmt.Sprintf("star rating, %d-%d", model.PriorityMin, model.PriorityMax),
				Value:       model.PriorityMin,
				Destination: &cmd.draft.Priority,
			},
		},
		Action: cmd.run,
	})

	return a
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "add")
	tr := cmd.app.Tracker

	d := cmd.draft
	if d.Date == "" {
		d.Date = tr.Now().Format(model.DateLayout)
	}
	if d.Color == "" {
		d.Color = model.DefaultColor
		if cmd.app.Config != nil {
			d.Color = cmd.app.Config.Display.DefaultColor
		}
	}

	if err := tr.Add(ctx, d.Task()); err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	log.Debug().Ctx(ctx).Int("n", tr.Len()).Msg("task added")

	_, _ = fmt.Fprintf(c.Root().Writer, "Added task %d: %s\n", tr.Len(), d.Task().Activity)
	return nil
}
