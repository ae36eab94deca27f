package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/nhle/schedule/internal/app"
	"github.com/nhle/schedule/internal/logging"
)

type TuiCmd struct {
	flags *Flags
	app   *App

	hideCompleted bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "hide-completed",
			Usage:       "start with completed tasks hidden",
			Destination: &cmd.hideCompleted,
		},
	}
}

// Register adds the tui command to the application. Its flags live on the
// root command and are inherited.
func (cmd *TuiCmd) Register(a *cli.Command) *cli.Command {
	a.Commands = append(a.Commands, &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive schedule",
		Action: cmd.Run,
	})
	return a
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	showCompleted := cmd.app.Config.Display.ShowCompleted && !cmd.hideCompleted

	m := app.New(ctx, cmd.app.Controller(), app.Options{
		ShowCompleted: showCompleted,
		Logger:        logging.Component("app"),
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
