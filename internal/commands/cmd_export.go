package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nhle/schedule/internal/store"
)

type ExportCmd struct {
	flags *Flags
	app   *App

	format string
	output string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(a *cli.Command) *cli.Command {
	a.Commands = append(a.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Write all tasks as JSON or TOML",
		UsageText: "schedule export [--format json|toml] [-o FILE]",
		Description: `JSON output is the same array the tracker stores, so it can be
loaded back with import.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "json or toml",
				Value:       string(store.FormatJSON),
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write to FILE instead of stdout",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})
	return a
}

func (cmd *ExportCmd) run(_ context.Context, c *cli.Command) (err error) {
	format, err := store.ParseFormat(cmd.format)
	if err != nil {
		return err
	}

	var w io.Writer = c.Root().Writer
	if cmd.output != "" {
		f, err := os.Create(cmd.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		w = f
	}

	return store.Export(w, cmd.app.Tracker.Tasks(), format)
}
