package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config is the application configuration.
type Config struct {
	Project ProjectConfig `mapstructure:"project"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

// ProjectConfig locates the transformation project the UI drives.
type ProjectConfig struct {
	// Path is the project root directory.
	Path string `mapstructure:"path"`
	// StateDB is the state database file, relative to Path unless absolute.
	StateDB string `mapstructure:"state_db"`
	// Bin is the engine CLI executable.
	Bin string `mapstructure:"bin"`
	// DefaultEnvironment is the environment assumed active at startup.
	DefaultEnvironment string `mapstructure:"default_environment"`
}

// UIConfig tunes terminal behavior.
type UIConfig struct {
	// HistorySize bounds the REPL command history.
	HistorySize int `mapstructure:"history_size"`
	// ShellTimeout is the wall-clock budget for `!` shell commands.
	ShellTimeout time.Duration `mapstructure:"shell_timeout"`
	// Theme selects the color palette: dark or light.
	Theme string `mapstructure:"theme"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StateDBPath resolves the state database path against the project root.
func (p ProjectConfig) StateDBPath() string {
	if filepath.IsAbs(p.StateDB) {
		return p.StateDB
	}
	return filepath.Join(p.Path, p.StateDB)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Project.Path == "" {
		return fmt.Errorf("project.path is required")
	}
	if c.UI.HistorySize <= 0 {
		return fmt.Errorf("ui.history_size must be positive, got %d", c.UI.HistorySize)
	}
	if c.UI.ShellTimeout <= 0 {
		return fmt.Errorf("ui.shell_timeout must be positive, got %s", c.UI.ShellTimeout)
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be dark or light, got %q", c.UI.Theme)
	}
	return nil
}
