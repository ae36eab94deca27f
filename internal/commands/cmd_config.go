package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nhle/schedule/internal/model"
)

type ConfigCmd struct {
	flags *Flags
	app   *App

	force bool
}

// NewConfigCmd creates a new config command
func NewConfigCmd(flags *Flags, app *App) *ConfigCmd {
	return &ConfigCmd{flags: flags, app: app}
}

// Register adds the config command to the application
func (cmd *ConfigCmd) Register(a *cli.Command) *cli.Command {
	a.Commands = append(a.Commands, &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Write the current settings to the config file",
				UsageText: "schedule config init [--force]",
				Description: `Writes the effective configuration, defaults plus any global flags,
to the --config path. Use --force to overwrite an existing file.`,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "force",
						Aliases:     []string{"f"},
						Usage:       "overwrite existing configuration",
						Destination: &cmd.force,
					},
				},
				Action: cmd.runInit,
			},
		},
	})
	return a
}

func (cmd *ConfigCmd) runInit(_ context.Context, c *cli.Command) error {
	path := cmd.flags.ConfigPath
	if path == "" {
		path = DefaultConfigPath()
	}

	if !cmd.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists; use --force to overwrite", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("check config: %w", err)
		}
	}

	if err := model.SaveConfig(path, cmd.app.Config); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Wrote %s\n", path)
	return nil
}
