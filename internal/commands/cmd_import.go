package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/nhle/schedule/internal/logging"
	"github.com/nhle/schedule/internal/store"
)

// corruptDropper is implemented by stores that keep a copy of a task list
// they could not read.
type corruptDropper interface {
	DropCorrupt(ctx context.Context) (bool, error)
}

type ImportCmd struct {
	flags *Flags
	app   *App

	file        string
	format      string
	appendTasks bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(a *cli.Command) *cli.Command {
	a.Commands = append(a.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Load tasks from JSON or TOML",
		UsageText: "schedule import [-f FILE] [--format json|toml] [--append]",
		Description: `Replaces the task list with the imported tasks, or adds them to the
end with --append. Reads stdin when no file is given.

The format defaults to the file extension, then json. Nothing is changed
if any imported task is invalid.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the file (reads from stdin if not provided)",
				Destination: &cmd.file,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "json or toml",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "append",
				Usage:       "keep existing tasks",
				Destination: &cmd.appendTasks,
			},
		},
		Action: cmd.run,
	})
	return a
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "import")

	name := cmd.format
	if name == "" && cmd.file != "" {
		name = strings.TrimPrefix(filepath.Ext(cmd.file), ".")
		if name != string(store.FormatTOML) {
			name = ""
		}
	}
	format, err := store.ParseFormat(name)
	if err != nil {
		return err
	}

	var r io.Reader
	if cmd.file != "" {
		f, err := os.Open(cmd.file)
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	} else {
		if isTerminal(c.Root().Reader) {
			return errors.New("no input provided (stdin is a terminal); use -f flag or pipe input")
		}
		r = c.Root().Reader
	}

	imported, err := store.Import(r, format)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	tr := cmd.app.Tracker
	next := imported
	if cmd.appendTasks {
		next = append(tr.Tasks(), imported...)
	}
	if err := tr.SetAll(ctx, next); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	log.Info().Ctx(ctx).Int("count", len(imported)).Bool("append", cmd.appendTasks).Msg("tasks imported")

	// A replacing import supersedes whatever was set aside as unreadable.
	if d, ok := cmd.app.Store.(corruptDropper); ok && !cmd.appendTasks {
		if _, err := d.DropCorrupt(ctx); err != nil {
			log.Warn().Ctx(ctx).Err(err).Msg("failed to drop unreadable task list")
		}
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Imported %d tasks (%d total)\n", len(imported), tr.Len())
	return nil
}
