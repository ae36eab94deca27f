package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/nhle/schedule/internal/commands"
	"github.com/nhle/schedule/internal/logging"
	"github.com/nhle/schedule/internal/model"
	"github.com/nhle/schedule/internal/theme"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
)

func build() string {
	v, c := version, commit
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", v, c)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		scheduler = &commands.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "schedule",
		Usage:     "Plan your day and count down to deadlines",
		UsageText: "schedule [global options] command [command options]",
		Description: `Schedule keeps a prioritized list of time-boxed tasks and deadlines,
grouped by category.

Run 'schedule' with no arguments to open the interactive view.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("SCHEDULE_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/schedule.log)",
				Sources:     cli.EnvVars("SCHEDULE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SCHEDULE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("SCHEDULE_DATA_DIR"),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := model.LoadConfig(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Apply(cfg)

			logger, closer, err := logging.New(cfg.Log.Level, cfg.LogPath())
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			if err := theme.Apply(cfg.Display.Theme); err != nil {
				return ctx, fmt.Errorf("apply theme: %w", err)
			}

			opened, err := commands.Open(ctx, cfg, log.Logger)
			if err != nil {
				return ctx, err
			}
			// Commands already hold a pointer to scheduler.
			*scheduler = *opened

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if err := scheduler.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close store")
				return err
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, scheduler)

	app = tuiCmd.Register(app)
	app = commands.NewListCmd(flags, scheduler).Register(app)
	app = commands.NewAddCmd(flags, scheduler).Register(app)
	app = commands.NewDoneCmd(flags, scheduler).Register(app)
	app = commands.NewDeleteCmd(flags, scheduler).Register(app)
	app = commands.NewCategoriesCmd(flags, scheduler).Register(app)
	app = commands.NewClearCmd(flags, scheduler).Register(app)
	app = commands.NewExportCmd(flags, scheduler).Register(app)
	app = commands.NewImportCmd(flags, scheduler).Register(app)
	app = commands.NewConfigCmd(flags, scheduler).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'schedule --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
