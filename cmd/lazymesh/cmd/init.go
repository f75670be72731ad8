package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lazymesh/lazymesh/internal/fsutil"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter .lazymesh.yaml",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

// starterConfig mirrors the config file layout with yaml tags, so the
// generated file matches what the loader reads back.
type starterConfig struct {
	Project struct {
		Path               string `yaml:"path"`
		StateDB            string `yaml:"state_db"`
		Bin                string `yaml:"bin"`
		DefaultEnvironment string `yaml:"default_environment"`
	} `yaml:"project"`
	UI struct {
		HistorySize  int    `yaml:"history_size"`
		ShellTimeout string `yaml:"shell_timeout"`
		Theme        string `yaml:"theme"`
	} `yaml:"ui"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func runInit(cobraCmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	path := filepath.Join(dir, ".lazymesh.yaml")

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	var starter starterConfig
	starter.Project.Path = "."
	starter.Project.StateDB = "db.db"
	starter.Project.Bin = "sqlmesh"
	starter.Project.DefaultEnvironment = "prod"
	starter.UI.HistorySize = 100
	starter.UI.ShellTimeout = "10s"
	starter.UI.Theme = "dark"
	starter.Log.Level = "info"
	starter.Log.Format = "auto"

	data, err := yaml.Marshal(starter)
	if err != nil {
		return err
	}
	if err := fsutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
