package tui

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// DefaultShellTimeout bounds shell escapes when no timeout is configured.
const DefaultShellTimeout = 10 * time.Second

// ShellResult is the captured outcome of a shell escape.
type ShellResult struct {
	Command  string
	Stdout   string
	Stderr   string
	TimedOut bool
	Err      error
}

// runShell executes command under `sh -c` with a hard wall-clock timeout.
// On timeout the process is killed and TimedOut is set; the partial output
// captured so far is still returned.
func runShell(parent context.Context, command string, timeout time.Duration) ShellResult {
	if timeout <= 0 {
		timeout = DefaultShellTimeout
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ShellResult{
		Command: command,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.Err = ctx.Err()
		return result
	}
	result.Err = err
	return result
}
