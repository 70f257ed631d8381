package execx

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/aicommit/internal/aerr"
)

func TestExecuteSuccess(t *testing.T) {
	result, err := Execute(context.Background(), Spec{
		Command: "sh",
		Args:    []string{"-c", "echo hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.False(t, result.TimedOut)
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestExecuteNonZeroExitIsNotAnError(t *testing.T) {
	result, err := Execute(context.Background(), Spec{
		Command: "sh",
		Args:    []string{"-c", "echo oops >&2; exit 3"},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "oops\n", result.Stderr)
	assert.False(t, result.TimedOut)
}

func TestExecuteMissingCommand(t *testing.T) {
	_, err := Execute(context.Background(), Spec{Command: "definitely-not-a-real-binary-xyz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting definitely-not-a-real-binary-xyz")
}

func TestExecuteEmptyCommand(t *testing.T) {
	_, err := Execute(context.Background(), Spec{})
	require.Error(t, err)
}

func TestExecuteTimeout(t *testing.T) {
	result, err := Execute(context.Background(), Spec{
		Command: "sh",
		Args:    []string{"-c", "sleep 10"},
		Timeout: 100 * time.Millisecond,
	})

	require.NoError(t, err, "timeouts are reported on the result, not as an error")
	assert.True(t, result.TimedOut)
	assert.Equal(t, -1, result.ExitCode)
}

func TestExecuteStdin(t *testing.T) {
	result, err := Execute(context.Background(), Spec{
		Command: "cat",
		Input:   "from stdin",
	})

	require.NoError(t, err)
	assert.Equal(t, "from stdin", result.Stdout)
}

func TestExecuteDir(t *testing.T) {
	dir := t.TempDir()
	result, err := Execute(context.Background(), Spec{
		Command: "pwd",
		Dir:     dir,
	})

	require.NoError(t, err)
	assert.Contains(t, strings.TrimSpace(result.Stdout), dir)
}

func TestExecuteEnv(t *testing.T) {
	result, err := Execute(context.Background(), Spec{
		Command: "sh",
		Args:    []string{"-c", "printf %s \"$AICOMMIT_TEST_VAR\""},
		Env:     map[string]string{"AICOMMIT_TEST_VAR": "wired"},
	})

	require.NoError(t, err)
	assert.Equal(t, "wired", result.Stdout)
}

func TestRunSuccess(t *testing.T) {
	out, err := Run(context.Background(), Spec{
		Command: "sh",
		Args:    []string{"-c", "echo fine"},
	})

	require.NoError(t, err)
	assert.Equal(t, "fine\n", out)
}

func TestRunNonZeroExit(t *testing.T) {
	tests := map[string]struct {
		script   string
		wantDiag string
	}{
		"stderr preferred": {
			script:   "echo ignored; echo the real problem >&2; exit 1",
			wantDiag: "the real problem",
		},
		"stdout fallback": {
			script:   "echo only stdout; exit 1",
			wantDiag: "only stdout",
		},
		"no output": {
			script:   "exit 1",
			wantDiag: "no diagnostic output",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Run(context.Background(), Spec{
				Command: "sh",
				Args:    []string{"-c", tt.script},
			})

			var provErr *aerr.ProviderError
			require.ErrorAs(t, err, &provErr)
			assert.Equal(t, "sh", provErr.Provider)
			assert.Contains(t, provErr.Message, "exited with code 1")
			assert.Contains(t, provErr.Message, tt.wantDiag)
		})
	}
}

func TestRunTimeout(t *testing.T) {
	_, err := Run(context.Background(), Spec{
		Command: "sleep",
		Args:    []string{"10"},
		Timeout: 100 * time.Millisecond,
	})

	var timeoutErr *aerr.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "sleep", timeoutErr.Provider)
	assert.Equal(t, 100*time.Millisecond, timeoutErr.Timeout)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
