package commands

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/nhle/schedule/internal/model"
)

// Flags holds the global flag values shared by all commands.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
}

// DefaultConfigPath returns the config file used when --config is not set.
func DefaultConfigPath() string {
	return model.DefaultConfigPath()
}

// Apply overrides cfg with flags the user set explicitly.
func (f *Flags) Apply(cfg *model.AppConfig) {
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
}

// position reads the single 1-based task number argument and returns the
// list index it refers to.
func position(c *cli.Command) (int, error) {
	if c.Args().Len() != 1 {
		return 0, fmt.Errorf("expected one task number, got %d arguments", c.Args().Len())
	}
	arg := c.Args().First()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task number %q", arg)
	}
	return n - 1, nil
}
