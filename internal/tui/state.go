package tui

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lazymesh/lazymesh/internal/fsutil"
)

// UIState is the part of the session persisted across runs.
type UIState struct {
	ActiveEnvironment string `yaml:"active_environment"`
	Theme             string `yaml:"theme"`
}

// StateManager loads and saves UIState with atomic writes, so a crash mid
// save never leaves a truncated file behind.
type StateManager struct {
	path string
}

// NewStateManager creates a manager persisting to path.
func NewStateManager(path string) *StateManager {
	return &StateManager{path: path}
}

// Load reads the persisted state. A missing file yields the zero state.
func (m *StateManager) Load() (UIState, error) {
	var state UIState

	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return state, err
	}
	if err := yaml.Unmarshal(data, &state); err != nil {
		return UIState{}, err
	}
	return state, nil
}

// Save persists the state atomically, creating parent directories.
func (m *StateManager) Save(state UIState) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	return fsutil.AtomicWriteFile(m.path, data, 0o644)
}
