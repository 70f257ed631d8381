// Package execx provides the process execution primitive shared by every
// CLI-backed provider. It spawns exactly one OS process per call with a
// bounded timeout; there is no process reuse or pooling because the wrapped
// tools hold implicit per-invocation session state that must not leak
// across calls.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ariel-frischer/aicommit/internal/aerr"
)

// termGracePeriod is how long a timed-out process gets to exit after the
// interrupt signal before it is forcefully killed.
const termGracePeriod = 5 * time.Second

// Spec describes a single process invocation.
type Spec struct {
	// Command is the executable name, resolved via PATH. Arguments are
	// passed as argv directly; no shell interpolation ever happens, so
	// prompt content cannot inject commands.
	Command string
	Args    []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env contains additional environment variables merged over the
	// process environment; these values take precedence.
	Env map[string]string

	// Input, when non-empty, is written to the process's stdin and closed.
	Input string

	// Timeout bounds the whole invocation. Zero means no timeout beyond
	// whatever deadline the caller's context carries.
	Timeout time.Duration
}

// Result is the raw, unclassified outcome of one process invocation.
// Exit code 0 is the only success signal at this layer.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// Execute runs the process described by spec and captures its output.
// It never returns an error for a non-zero exit; classification is the
// caller's job. Errors are reserved for spawn failures (command not found,
// permission denied) and context cancellation unrelated to the timeout.
func Execute(ctx context.Context, spec Spec) (*Result, error) {
	if spec.Command == "" {
		return nil, fmt.Errorf("execx: command is required")
	}

	cancel := func() {}
	if spec.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
	}
	defer cancel()

	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	cmd.Env = buildEnv(spec.Env)

	// On timeout, interrupt first; escalate to SIGKILL after the grace
	// period if the process has not exited.
	cmd.Cancel = func() error {
		if err := cmd.Process.Signal(os.Interrupt); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = termGracePeriod

	if spec.Input != "" {
		cmd.Stdin = strings.NewReader(spec.Input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if ctx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.ExitCode = -1
		return result, nil
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("starting %s: %w", spec.Command, err)
	}

	return result, nil
}

// Run is the convenience form of Execute that converts failure outcomes
// into typed errors. A timeout surfaces as a TimeoutError attributed to the
// command; a non-zero exit surfaces as a ProviderError carrying stderr (or
// stdout if stderr is empty) so diagnostic text is never dropped.
func Run(ctx context.Context, spec Spec) (string, error) {
	result, err := Execute(ctx, spec)
	if err != nil {
		return "", aerr.NewProviderError(spec.Command, err.Error(), err)
	}

	if result.TimedOut {
		return "", aerr.NewTimeoutError(spec.Command, "execute", spec.Timeout)
	}

	if result.ExitCode != 0 {
		diag := strings.TrimSpace(result.Stderr)
		if diag == "" {
			diag = strings.TrimSpace(result.Stdout)
		}
		if diag == "" {
			diag = "no diagnostic output"
		}
		return "", aerr.NewProviderError(spec.Command,
			fmt.Sprintf("exited with code %d: %s", result.ExitCode, diag), nil)
	}

	return result.Stdout, nil
}

// buildEnv merges extra variables over the process environment.
func buildEnv(extra map[string]string) []string {
	env := os.Environ()
	for k, v := range extra {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}
