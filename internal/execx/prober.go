package execx

import (
	"context"
	"os/exec"
	"time"
)

// probeTimeout bounds each probe invocation. Availability checks run
// speculatively over many providers; a hung tool must not stall them.
const probeTimeout = 5 * time.Second

// CheckAvailable reports whether a command is installed and answers a
// lightweight invocation. It tries `command --version` first and falls back
// to `command --help`. Any failure, including command-not-found, resolves
// to false rather than an error.
//
// The check is advisory: a passing probe does not guarantee the real
// invocation succeeds (auth, rate limits, transient failures).
func CheckAvailable(ctx context.Context, command string) bool {
	if command == "" {
		return false
	}
	if _, err := exec.LookPath(command); err != nil {
		return false
	}

	for _, flag := range []string{"--version", "--help"} {
		result, err := Execute(ctx, Spec{
			Command: command,
			Args:    []string{flag},
			Timeout: probeTimeout,
		})
		if err == nil && !result.TimedOut && result.ExitCode == 0 {
			return true
		}
	}
	return false
}
