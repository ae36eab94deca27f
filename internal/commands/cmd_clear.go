package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/nhle/schedule/internal/logging"
)

type ClearCmd struct {
	flags *Flags
	app   *App

	yes bool
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags, app *App) *ClearCmd {
	return &ClearCmd{flags: flags, app: app}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(a *cli.Command) *cli.Command {
	a.Commands = append(a.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Delete every task",
		UsageText: "schedule clear [--yes]",
		Description: `Deletes all tasks after asking for confirmation.

Without a terminal to ask on, --yes is required.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})
	return a
}

func (cmd *ClearCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "clear")
	tr := cmd.app.Tracker
	out := c.Root().Writer

	n := tr.Len()
	if n == 0 {
		_, _ = fmt.Fprintln(out, "Nothing to clear")
		return nil
	}

	if !cmd.yes {
		if !isTerminal(c.Root().Reader) {
			return errors.New("refusing to clear without a terminal; pass --yes")
		}
		ok, err := confirm(ctx, c.Root().Reader, out, fmt.Sprintf("Delete all %d tasks?", n))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Aborted")
			return nil
		}
	}

	if err := tr.Clear(ctx); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	log.Info().Ctx(ctx).Int("count", n).Msg("tasks cleared")

	_, _ = fmt.Fprintf(out, "Deleted %d tasks\n", n)
	return nil
}

// confirm asks a yes/no question on w and reads the answer from r.
// Anything but y or yes, including end of input, counts as no.
func confirm(ctx context.Context, r io.Reader, w io.Writer, title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).
		WithInput(r).
		WithOutput(w).
		WithAccessible(true).
		RunWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
