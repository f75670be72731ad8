package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/lazymesh/lazymesh/internal/core"
	"github.com/lazymesh/lazymesh/internal/logging"
)

// Runner executes the engine binary and returns captured stdout and stderr.
// It exists as a seam so tests can script the engine without a real install.
type Runner func(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

// Context drives a SQLMesh project through its command-line interface. It
// implements core.ProjectContext: reads come from the injected StateReader,
// mutations shell out to the engine CLI, and all human-facing output flows
// through the injected Console.
type Context struct {
	bin     string
	project string
	store   core.StateReader
	console core.Console
	logger  *logging.Logger
	run     Runner
}

// NewContext creates a CLI-backed project context. Until SetConsole is
// called, output goes to a stdio console.
func NewContext(bin, projectPath string, store core.StateReader, logger *logging.Logger) *Context {
	return &Context{
		bin:     bin,
		project: projectPath,
		store:   store,
		console: NewStdioConsole(os.Stdin, os.Stdout),
		logger:  logger,
		run:     execRunner,
	}
}

// SetConsole injects the console used for output and confirmation prompts.
func (c *Context) SetConsole(console core.Console) {
	c.console = console
}

// ListEnvironments returns the environments recorded in the state store.
func (c *Context) ListEnvironments(ctx context.Context) ([]core.Environment, error) {
	return c.store.ListEnvironments(ctx)
}

// GetEnvironment returns one environment by name.
func (c *Context) GetEnvironment(ctx context.Context, name string) (*core.Environment, error) {
	return c.store.GetEnvironment(ctx, name)
}

// Plan previews a plan for env and applies it once the console confirms.
func (c *Context) Plan(ctx context.Context, env string, includeUnmodified bool) error {
	args := []string{"plan", env, "--no-prompts"}
	if includeUnmodified {
		args = append(args, "--include-unmodified")
	}

	stdout, stderr, err := c.exec(ctx, args...)
	c.print(stdout)
	if err != nil {
		c.print(stderr)
		return core.ErrExecution(core.CodeCommandFailed,
			fmt.Sprintf("planning %s", env)).WithCause(err)
	}

	if !c.console.Confirm(fmt.Sprintf("Apply plan to `%s`?", env)) {
		c.print("Plan discarded")
		return nil
	}

	stdout, stderr, err = c.exec(ctx, append(args, "--auto-apply")...)
	c.print(stdout)
	if err != nil {
		c.print(stderr)
		return core.ErrExecution(core.CodeCommandFailed,
			fmt.Sprintf("applying plan to %s", env)).WithCause(err)
	}
	return nil
}

// Run executes scheduled intervals for env.
func (c *Context) Run(ctx context.Context, env string) error {
	stdout, stderr, err := c.exec(ctx, "run", env)
	c.print(stdout)
	if err != nil {
		c.print(stderr)
		return core.ErrExecution(core.CodeCommandFailed,
			fmt.Sprintf("running intervals for %s", env)).WithCause(err)
	}
	return nil
}

// Audit runs audits over the given time window.
func (c *Context) Audit(ctx context.Context, start, end string) error {
	stdout, stderr, err := c.exec(ctx, "audit", "--start", start, "--end", end)
	c.print(stdout)
	if err != nil {
		c.print(stderr)
		return core.ErrExecution(core.CodeCommandFailed, "running audits").WithCause(err)
	}
	return nil
}

// Diff writes the difference between env and the local model definitions to
// the console.
func (c *Context) Diff(ctx context.Context, env string) error {
	stdout, stderr, err := c.exec(ctx, "diff", env)
	c.print(stdout)
	if err != nil {
		c.print(stderr)
		return core.ErrExecution(core.CodeCommandFailed,
			fmt.Sprintf("diffing %s", env)).WithCause(err)
	}
	return nil
}

// RunUnitTests runs the project's unit tests.
func (c *Context) RunUnitTests(ctx context.Context) error {
	stdout, stderr, err := c.exec(ctx, "test")
	c.print(stdout)
	if err != nil {
		c.print(stderr)
		return core.ErrExecution(core.CodeCommandFailed, "running unit tests").WithCause(err)
	}
	return nil
}

// PrintInfo writes connection and project status to the console.
func (c *Context) PrintInfo(ctx context.Context) error {
	stdout, stderr, err := c.exec(ctx, "info")
	c.print(stdout)
	if err != nil {
		c.print(stderr)
		return core.ErrExecution(core.CodeCommandFailed, "checking status").WithCause(err)
	}
	return nil
}

func (c *Context) exec(ctx context.Context, args ...string) (string, string, error) {
	full := append([]string{"-p", c.project}, args...)
	c.logger.Debug("exec engine", "bin", c.bin, "args", strings.Join(full, " "))
	return c.run(ctx, c.bin, full...)
}

// print writes non-empty output to the console.
func (c *Context) print(text string) {
	if text = strings.TrimRight(text, "\n"); text != "" {
		c.console.Print(text)
	}
}

// execRunner is the production Runner.
func execRunner(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = fmt.Errorf("%s exited with code %d", name, exitErr.ExitCode())
	}
	return stdout.String(), stderr.String(), err
}
