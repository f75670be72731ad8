package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazymesh/lazymesh/internal/control"
	"github.com/lazymesh/lazymesh/internal/core"
)

// EnvironmentsLoadedMsg carries the result of an environment fetch.
type EnvironmentsLoadedMsg struct {
	Environments []core.Environment
	Err          error
}

// FetchSupersededMsg reports a fetch that was cancelled by a newer one. The
// newer fetch reports the list; this only balances the busy count.
type FetchSupersededMsg struct{}

// EnvironmentDetailMsg carries one environment's snapshot list.
type EnvironmentDetailMsg struct {
	Environment *core.Environment
	Err         error
}

// PlanDoneMsg signals plan completion for an environment.
type PlanDoneMsg struct {
	Environment string
	Err         error
}

// RunDoneMsg signals interval-run completion for an environment.
type RunDoneMsg struct {
	Environment string
	Err         error
}

// AuditDoneMsg signals audit completion.
type AuditDoneMsg struct {
	Err error
}

// DiffDoneMsg signals diff completion.
type DiffDoneMsg struct {
	Environment string
	Err         error
}

// TestsDoneMsg signals unit-test completion.
type TestsDoneMsg struct {
	Err error
}

// StatusDoneMsg signals a status check completion.
type StatusDoneMsg struct {
	Err error
}

// MethodDoneMsg carries the result of a meta-command invocation.
type MethodDoneMsg struct {
	Method string
	Output string
	Err    error
}

// ShellDoneMsg carries the output of a shell escape.
type ShellDoneMsg struct {
	Command  string
	Stdout   string
	Stderr   string
	TimedOut bool
	Err      error
}

// PromptRequestMsg delivers a pending console prompt to the UI.
type PromptRequestMsg struct {
	Request control.Request
}

// LogMsg appends a line to the terminal log.
type LogMsg struct {
	Time    time.Time
	Level   string
	Message string
}

// NotificationExpiredMsg clears a transient notification.
type NotificationExpiredMsg struct {
	ID int
}

// ClipboardWrittenMsg reports the outcome of a copy-log keypress.
type ClipboardWrittenMsg struct {
	Method string
	Err    error
}

// uiStateSavedMsg reports a background session-state write.
type uiStateSavedMsg struct {
	err error
}

// expireNotification schedules a notification clear.
func expireNotification(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return NotificationExpiredMsg{ID: id}
	})
}
