package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/nhle/schedule/internal/model"
	"github.com/nhle/schedule/internal/schedule"
)

type ListCmd struct {
	flags *Flags
	app   *App

	// flags
	category   string
	jsonOutput bool
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags, app *App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(a *cli.Command) *cli.Command {
	a.Commands = append(a.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List tasks by priority",
		UsageText: "schedule list [--category NAME] [--json]",
		Description: `Prints tasks ordered by priority, then start time.

The # column is the task number used by done and delete.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "category",
				Usage:       "only show tasks in this category",
				Destination: &cmd.category,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return a
}

// listRow is one JSON line of list output.
type listRow struct {
	N int `json:"n"`
	model.Task
	DaysLeft *int `json:"daysLeft,omitempty"`
}

func (cmd *ListCmd) run(_ context.Context, c *cli.Command) error {
	tr := cmd.app.Tracker
	rows := schedule.BuildRows(tr.Tasks(), cmd.category, tr.Now())
	out := c.Root().Writer

	if cmd.jsonOutput {
		enc := json.NewEncoder(out)
		for _, r := range rows {
			line := listRow{N: r.Index + 1, Task: r.Task}
			if r.HasDeadline {
				line.DaysLeft = &r.DaysLeft
			}
			if err := enc.Encode(line); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tDONE\tDATE\tTIME\tACTIVITY\tCATEGORY\tPRIORITY\tDEADLINE")
	for _, r := range rows {
		done := " "
		if r.Task.Completed {
			done = "x"
		}
		deadline := "-"
		if r.HasDeadline {
			deadline = schedule.CountdownLabel(r.DaysLeft)
		}
		_, _ = fmt.Fprintf(w, "%d\t[%s]\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Index+1, done, r.Task.Date, r.Task.TimeRange(), r.Task.Activity,
			r.Task.Category, r.Stars, deadline)
	}
	return w.Flush()
}
