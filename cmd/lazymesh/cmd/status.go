package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sqlmeshcli "github.com/lazymesh/lazymesh/internal/adapters/cli"
	"github.com/lazymesh/lazymesh/internal/adapters/state"
	"github.com/lazymesh/lazymesh/internal/logging"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check project status without starting the interface",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cobraCmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	store, err := state.Open(cfg.Project.StateDBPath())
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer store.Close()

	project := sqlmeshcli.NewContext(cfg.Project.Bin, cfg.Project.Path, store, logger)
	if err := project.PrintInfo(cobraCmd.Context()); err != nil {
		return err
	}

	envs, err := store.ListEnvironments(cobraCmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cobraCmd.OutOrStdout(), "%d environments in state store\n", len(envs))
	for _, env := range envs {
		fmt.Fprintf(cobraCmd.OutOrStdout(), "  %s (%d snapshots)\n", env.Name, len(env.Snapshots))
	}
	return nil
}
