package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazymesh/lazymesh/internal/control"
	"github.com/lazymesh/lazymesh/internal/core"
	"github.com/lazymesh/lazymesh/internal/logging"
)

// Dispatcher turns intents into background commands against the project
// context. Every command runs off the UI loop; results come back as typed
// messages. Fetch, plan and audit occupy exclusive slots, so a repeated
// request supersedes the one in flight instead of queueing behind it.
type Dispatcher struct {
	base         context.Context
	pc           core.ProjectContext
	slots        *control.Slots
	logger       *logging.Logger
	shellTimeout time.Duration
}

// NewDispatcher creates a dispatcher. base is the process-lifetime context.
func NewDispatcher(base context.Context, pc core.ProjectContext, slots *control.Slots, logger *logging.Logger, shellTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		base:         base,
		pc:           pc,
		slots:        slots,
		logger:       logger,
		shellTimeout: shellTimeout,
	}
}

// FetchEnvironments reloads the environment list. Supersedes a fetch in
// flight.
func (d *Dispatcher) FetchEnvironments() tea.Cmd {
	ctx := d.slots.Fetch.Start(d.base)
	return func() tea.Msg {
		envs, err := d.pc.ListEnvironments(ctx)
		if ctx.Err() != nil {
			return FetchSupersededMsg{}
		}
		return EnvironmentsLoadedMsg{Environments: envs, Err: err}
	}
}

// LoadEnvironment fetches one environment's snapshot list.
func (d *Dispatcher) LoadEnvironment(name string) tea.Cmd {
	return func() tea.Msg {
		env, err := d.pc.GetEnvironment(d.base, name)
		return EnvironmentDetailMsg{Environment: env, Err: err}
	}
}

// Plan creates and, once confirmed through the console, applies a plan.
// Supersedes a plan in flight. The model refreshes the environment list
// exactly once when the returned message carries no error.
func (d *Dispatcher) Plan(env string) tea.Cmd {
	ctx := d.slots.Plan.Start(d.base)
	return func() tea.Msg {
		d.logger.Info("planning", "environment", env)
		err := d.pc.Plan(ctx, env, true)
		if ctx.Err() != nil && err == nil {
			err = ctx.Err()
		}
		return PlanDoneMsg{Environment: env, Err: err}
	}
}

// Run executes scheduled intervals. The model refreshes the environment list
// afterwards regardless of outcome.
func (d *Dispatcher) Run(env string) tea.Cmd {
	return func() tea.Msg {
		d.logger.Info("running intervals", "environment", env)
		return RunDoneMsg{Environment: env, Err: d.pc.Run(d.base, env)}
	}
}

// Audit runs audits over the default window. Supersedes an audit in flight.
func (d *Dispatcher) Audit(start, end string) tea.Cmd {
	ctx := d.slots.Audit.Start(d.base)
	return func() tea.Msg {
		return AuditDoneMsg{Err: d.pc.Audit(ctx, start, end)}
	}
}

// Diff diffs an environment against local definitions; output goes through
// the console.
func (d *Dispatcher) Diff(env string) tea.Cmd {
	return func() tea.Msg {
		return DiffDoneMsg{Environment: env, Err: d.pc.Diff(d.base, env)}
	}
}

// RunTests runs the project unit tests. Failures are surfaced.
func (d *Dispatcher) RunTests() tea.Cmd {
	return func() tea.Msg {
		return TestsDoneMsg{Err: d.pc.RunUnitTests(d.base)}
	}
}

// Status prints connection and project info through the console.
func (d *Dispatcher) Status() tea.Cmd {
	return func() tea.Msg {
		return StatusDoneMsg{Err: d.pc.PrintInfo(d.base)}
	}
}

// Shell runs an external command with the configured hard timeout.
func (d *Dispatcher) Shell(command string) tea.Cmd {
	return func() tea.Msg {
		res := runShell(d.base, command, d.shellTimeout)
		return ShellDoneMsg{
			Command:  res.Command,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
			TimedOut: res.TimedOut,
			Err:      res.Err,
		}
	}
}

// CallMethod invokes one meta-command from the table.
func (d *Dispatcher) CallMethod(table *MethodTable, call MethodCall) tea.Cmd {
	return func() tea.Msg {
		m, ok := table.Get(call.Name)
		if !ok {
			return MethodDoneMsg{Method: call.Name,
				Err: core.ErrRouting(core.CodeUnknownMethod, "unknown method: "+call.Name)}
		}
		out, err := m.Handler(d.base, d.pc, call.Args)
		return MethodDoneMsg{Method: call.Name, Output: out, Err: err}
	}
}
