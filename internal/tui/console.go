package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/lazymesh/lazymesh/internal/control"
	"github.com/lazymesh/lazymesh/internal/logging"
)

// Placeholders shown in the input widget while a prompt is pending.
const (
	confirmPlaceholder = "y/n"
	promptPlaceholder  = "Enter a value"
)

// TerminalConsole satisfies the project context's console capability by
// blocking on the bridge. It is handed to worker goroutines only; the UI
// loop itself never calls Confirm or Prompt.
type TerminalConsole struct {
	base   context.Context
	bridge *control.Bridge
	send   func(tea.Msg)
	logger *logging.Logger
}

// NewTerminalConsole creates a console over the bridge. send delivers
// messages into the running program (tea.Program.Send). base is the
// process-lifetime context; cancelling it unblocks every pending prompt.
func NewTerminalConsole(base context.Context, bridge *control.Bridge, send func(tea.Msg), logger *logging.Logger) *TerminalConsole {
	return &TerminalConsole{base: base, bridge: bridge, send: send, logger: logger}
}

// Print appends a value to the terminal log.
func (c *TerminalConsole) Print(value any) {
	c.send(LogMsg{Time: time.Now(), Level: "info", Message: fmt.Sprint(value)})
}

// Confirm asks a yes/no question. `y`/`yes` answers true, `n`/`no` answers
// false, anything else is logged as invalid and treated as false. A
// cancelled prompt answers false.
func (c *TerminalConsole) Confirm(message string) bool {
	resp, err := c.bridge.Ask(c.base, control.Request{
		ID:          uuid.NewString(),
		Kind:        control.KindConfirm,
		Message:     message,
		Placeholder: confirmPlaceholder,
	})
	if err != nil || resp.Cancelled {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(resp.Input)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		c.logger.Warn("invalid confirmation response", "input", resp.Input)
		c.send(LogMsg{
			Time:    time.Now(),
			Level:   "warn",
			Message: fmt.Sprintf("Invalid response %q, assuming no", resp.Input),
		})
		return false
	}
}

// Prompt requests a free-text value and returns it verbatim. A cancelled
// prompt returns the empty string.
func (c *TerminalConsole) Prompt(message string) string {
	resp, err := c.bridge.Ask(c.base, control.Request{
		ID:          uuid.NewString(),
		Kind:        control.KindPrompt,
		Message:     message,
		Placeholder: promptPlaceholder,
	})
	if err != nil || resp.Cancelled {
		return ""
	}
	return resp.Input
}
