package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lazymesh/lazymesh/internal/config"
)

var (
	cfgFile     string
	projectPath string
	logLevel    string
	logFormat   string

	// Version info, set via SetVersion.
	appVersion string
	appCommit  string
	appDate    string
)

// rootViper backs the config loader so flags participate in precedence.
var rootViper = viper.New()

var rootCmd = &cobra.Command{
	Use:   "lazymesh",
	Short: "A terminal interface for SQLMesh projects",
	Long: `lazymesh drives a SQLMesh project from the terminal: browse environments
and their snapshots, trigger plans, interval runs, audits and unit tests,
and issue ad-hoc commands against the project, all without leaving one
screen.

Running 'lazymesh' without arguments starts the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUI,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion records build metadata for the version command.
func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: .lazymesh.yaml)")
	rootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "",
		"path to the SQLMesh project (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format (auto, text, json)")

	_ = rootViper.BindPFlag("project.path", rootCmd.PersistentFlags().Lookup("project"))
	_ = rootViper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = rootViper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// loadConfig resolves the effective configuration: flags over environment
// over config file over defaults.
func loadConfig() (*config.Config, error) {
	loader := config.NewLoaderWithViper(rootViper)
	if cfgFile != "" {
		loader = loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
