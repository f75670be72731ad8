package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	sqlmeshcli "github.com/lazymesh/lazymesh/internal/adapters/cli"
	"github.com/lazymesh/lazymesh/internal/adapters/state"
	"github.com/lazymesh/lazymesh/internal/control"
	"github.com/lazymesh/lazymesh/internal/logging"
	"github.com/lazymesh/lazymesh/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Start the interactive terminal interface",
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

// programSender delivers messages into the program once it exists. Workers
// and the log handler hold it before tea.NewProgram runs, so delivery is
// deferred behind a mutex rather than a nil check.
type programSender struct {
	mu      sync.Mutex
	program *tea.Program
}

func (s *programSender) attach(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = p
}

func (s *programSender) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func runUI(cobraCmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sender := &programSender{}
	logger := logging.NewWithHandler(
		tui.NewUIHandler(sender.send, parseLevel(cfg.Log.Level)))

	store, err := state.Open(cfg.Project.StateDBPath())
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer store.Close()

	base, cancel := context.WithCancel(cobraCmd.Context())
	defer cancel()

	bridge := control.NewBridge()
	slots := &control.Slots{}
	defer slots.StopAll()
	defer bridge.CancelPending()

	project := sqlmeshcli.NewContext(cfg.Project.Bin, cfg.Project.Path, store, logger)
	project.SetConsole(tui.NewTerminalConsole(base, bridge, sender.send, logger))

	dispatcher := tui.NewDispatcher(base, project, slots, logger, cfg.UI.ShellTimeout)

	model := tui.New(tui.Options{
		Dispatcher:         dispatcher,
		Bridge:             bridge,
		Methods:            tui.NewMethodTable(),
		Logger:             logger,
		States:             tui.NewStateManager(uiStatePath()),
		Theme:              tui.ThemeByName(cfg.UI.Theme),
		HistorySize:        cfg.UI.HistorySize,
		DefaultEnvironment: cfg.Project.DefaultEnvironment,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	sender.attach(program)

	_, err = program.Run()
	return err
}

// uiStatePath is where the session state (active environment, theme) is
// persisted between runs.
func uiStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "lazymesh-state.yaml")
	}
	return filepath.Join(home, ".config", "lazymesh", "state.yaml")
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
