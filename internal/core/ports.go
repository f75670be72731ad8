package core

import "context"

// Console is the interactive console capability injected into the project
// context. Print writes a value into the user-facing log. Confirm and Prompt
// block the calling goroutine until the user answers; they must never be
// called from the UI render loop itself.
type Console interface {
	Print(value any)
	Confirm(message string) bool
	Prompt(message string) string
}

// StateReader provides read-only access to the environments recorded in the
// project's state store.
type StateReader interface {
	ListEnvironments(ctx context.Context) ([]Environment, error)
	GetEnvironment(ctx context.Context, name string) (*Environment, error)
}

// ProjectContext is the external data-transformation project the UI drives.
// The engine behind it (planner, scheduler, state writes) is an opaque
// collaborator; this port only names the operations the UI invokes.
//
// All operations honor ctx cancellation: superseded or abandoned work must
// return promptly with ctx.Err().
type ProjectContext interface {
	StateReader

	// Plan creates a plan for env, including unmodified models, and applies
	// it after the injected console confirms.
	Plan(ctx context.Context, env string, includeUnmodified bool) error

	// Run executes scheduled intervals for env's models.
	Run(ctx context.Context, env string) error

	// Audit runs audits over the given time window.
	Audit(ctx context.Context, start, end string) error

	// Diff writes the difference between env and the local model definitions
	// to the console.
	Diff(ctx context.Context, env string) error

	// RunUnitTests runs the project's unit tests.
	RunUnitTests(ctx context.Context) error

	// PrintInfo writes connection and project status to the console.
	PrintInfo(ctx context.Context) error

	// SetConsole injects the console used for output and confirmation
	// prompts during the operations above.
	SetConsole(console Console)
}
