package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFromDir(t, "")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Project.Path)
	assert.Equal(t, "db.db", cfg.Project.StateDB)
	assert.Equal(t, "sqlmesh", cfg.Project.Bin)
	assert.Equal(t, "prod", cfg.Project.DefaultEnvironment)
	assert.Equal(t, 100, cfg.UI.HistorySize)
	assert.Equal(t, 10*time.Second, cfg.UI.ShellTimeout)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestLoad_ConfigFile(t *testing.T) {
	cfg, err := loadFromDir(t, `
project:
  path: /data/pipelines
  default_environment: staging
ui:
  history_size: 25
  theme: light
`)
	require.NoError(t, err)

	assert.Equal(t, "/data/pipelines", cfg.Project.Path)
	assert.Equal(t, "staging", cfg.Project.DefaultEnvironment)
	assert.Equal(t, 25, cfg.UI.HistorySize)
	assert.Equal(t, "light", cfg.UI.Theme)
	// Untouched keys keep defaults.
	assert.Equal(t, "sqlmesh", cfg.Project.Bin)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LAZYMESH_PROJECT_DEFAULT_ENVIRONMENT", "dev")

	cfg, err := loadFromDir(t, "")
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Project.DefaultEnvironment)
}

func TestStateDBPath(t *testing.T) {
	p := ProjectConfig{Path: "/proj", StateDB: "db.db"}
	assert.Equal(t, filepath.Join("/proj", "db.db"), p.StateDBPath())

	p.StateDB = "/elsewhere/state.db"
	assert.Equal(t, "/elsewhere/state.db", p.StateDBPath())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Project: ProjectConfig{Path: "."},
		UI:      UIConfig{HistorySize: 100, ShellTimeout: 10 * time.Second, Theme: "dark"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing path", func(c *Config) { c.Project.Path = "" }},
		{"zero history", func(c *Config) { c.UI.HistorySize = 0 }},
		{"zero timeout", func(c *Config) { c.UI.ShellTimeout = 0 }},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// loadFromDir loads config from a temp dir, optionally writing a
// .lazymesh.yaml with the given content first.
func loadFromDir(t *testing.T, content string) (*Config, error) {
	t.Helper()
	dir := t.TempDir()
	loader := NewLoader()
	if content != "" {
		path := filepath.Join(dir, ".lazymesh.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		loader.WithConfigFile(path)
	}
	return loader.Load()
}
