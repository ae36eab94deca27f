package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig controls where the task list is persisted.
type StorageConfig struct {
	// Key is the KV entry the serialized task list lives under.
	Key string `mapstructure:"key" yaml:"key"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme         string `mapstructure:"theme" yaml:"theme"`
	DefaultColor  string `mapstructure:"default_color" yaml:"default_color"`
	ShowCompleted bool   `mapstructure:"show_completed" yaml:"show_completed"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	DataDir string        `mapstructure:"data_dir" yaml:"data_dir"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DBPath returns the SQLite database location inside DataDir.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.DataDir, "schedule.db")
}

// LogPath returns the configured log file, defaulting into DataDir.
func (c *AppConfig) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "schedule.log")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/schedule/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "schedule", "config.yaml")
}

// DefaultDataDir returns $XDG_DATA_HOME/schedule, falling back to
// ~/.local/share/schedule.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "schedule")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DataDir: DefaultDataDir(),
		Storage: StorageConfig{
			Key: "schedules",
		},
		Display: DisplayConfig{
			Theme:         "auto",
			DefaultColor:  DefaultColor,
			ShowCompleted: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := defaultAppConfig()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("storage.key", def.Storage.Key)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("display.default_color", def.Display.DefaultColor)
	v.SetDefault("display.show_completed", def.Display.ShowCompleted)
	v.SetDefault("log.level", def.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return def, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Storage.Key == "" {
		cfg.Storage.Key = def.Storage.Key
	}
	if !IsHexColor(cfg.Display.DefaultColor) {
		return nil, fmt.Errorf("parsing config %s: display.default_color %q is not #rrggbb",
			path, cfg.Display.DefaultColor)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("data_dir", cfg.DataDir)
	v.Set("storage", map[string]any{"key": cfg.Storage.Key})
	v.Set("display", map[string]any{
		"theme":          cfg.Display.Theme,
		"default_color":  cfg.Display.DefaultColor,
		"show_completed": cfg.Display.ShowCompleted,
	})
	v.Set("log", map[string]any{
		"level": cfg.Log.Level,
		"file":  cfg.Log.File,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
