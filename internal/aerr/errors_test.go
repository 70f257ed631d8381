package aerr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestProviderErrorError(t *testing.T) {
	tests := map[string]struct {
		err  *ProviderError
		want string
	}{
		"with provider": {
			err:  NewProviderError("claude", "exited with code 1: boom", nil),
			want: "claude: exited with code 1: boom",
		},
		"without provider": {
			err:  NewProviderError("", "something broke", nil),
			want: "something broke",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewProviderError("gemini", "failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the wrapped cause")
	}
}

func TestNotAvailableError(t *testing.T) {
	var err error = NewNotAvailableError("codex", "not found in PATH")

	var nae *NotAvailableError
	if !errors.As(err, &nae) {
		t.Fatal("errors.As should match *NotAvailableError")
	}
	if nae.Provider != "codex" {
		t.Errorf("Provider = %q, want %q", nae.Provider, "codex")
	}
	if got := err.Error(); got != "codex: not found in PATH" {
		t.Errorf("Error() = %q", got)
	}
}

func TestTimeoutError(t *testing.T) {
	err := NewTimeoutError("claude", "generateCommitMessage", 30*time.Second)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("timeout errors should unwrap to context.DeadlineExceeded")
	}
	if err.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", err.Timeout)
	}
	want := "claude: generateCommitMessage timed out after 30s (hint: increase timeout in config)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTimeoutErrorWithProvider(t *testing.T) {
	orig := NewTimeoutError("sh", "execute", 5*time.Second)
	reattr := orig.WithProvider("custom", "generateCommitMessage")

	if reattr.Provider != "custom" {
		t.Errorf("Provider = %q, want %q", reattr.Provider, "custom")
	}
	if reattr.Operation != "generateCommitMessage" {
		t.Errorf("Operation = %q, want %q", reattr.Operation, "generateCommitMessage")
	}
	if reattr.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", reattr.Timeout)
	}
	if !errors.Is(reattr, context.DeadlineExceeded) {
		t.Error("re-attributed error should preserve the cause")
	}
	if orig.Provider != "sh" {
		t.Error("WithProvider must not mutate the original error")
	}
}

func TestAPIError(t *testing.T) {
	tests := map[string]struct {
		statusCode int
		apiMessage string
		want       string
	}{
		"status with body": {
			statusCode: 429,
			apiMessage: "rate limited",
			want:       "api: API request failed (status 429): rate limited",
		},
		"status without body": {
			statusCode: 500,
			want:       "api: API request failed (status 500)",
		},
		"no status": {
			statusCode: 0,
			apiMessage: "connection refused",
			want:       "api: API request failed: connection refused",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := NewAPIError("api", tt.statusCode, tt.apiMessage, nil)
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if err.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.statusCode)
			}
		})
	}
}

func TestChainError(t *testing.T) {
	timeoutErr := NewTimeoutError("gemini", "generateCommitMessage", time.Minute)
	chainErr := &ChainError{
		AttemptedProviders: []string{"claude", "gemini", "codex"},
		Errs: []error{
			NewNotAvailableError("claude", "not found in PATH"),
			timeoutErr,
			NewProviderError("codex", "exited with code 2: bad flag", nil),
		},
	}

	msg := chainErr.Error()
	if !strings.HasPrefix(msg, "all 3 providers failed:") {
		t.Errorf("Error() should open with the attempt count, got %q", msg)
	}
	for i, name := range []string{"claude", "gemini", "codex"} {
		marker := fmt.Sprintf("%d. %s:", i+1, name)
		if !strings.Contains(msg, marker) {
			t.Errorf("Error() missing numbered entry %q in %q", marker, msg)
		}
	}

	// Aggregated errors stay reachable through errors.As and errors.Is.
	var te *TimeoutError
	if !errors.As(chainErr, &te) {
		t.Fatal("errors.As should find the TimeoutError inside the chain")
	}
	if te.Provider != "gemini" {
		t.Errorf("Provider = %q, want %q", te.Provider, "gemini")
	}
	if !errors.Is(chainErr, context.DeadlineExceeded) {
		t.Error("errors.Is should reach causes through the aggregate")
	}
}

func TestChainErrorIndexAlignment(t *testing.T) {
	chainErr := &ChainError{
		AttemptedProviders: []string{"a", "b"},
		Errs: []error{
			NewProviderError("a", "first failure", nil),
			NewProviderError("b", "second failure", nil),
		},
	}

	if len(chainErr.AttemptedProviders) != len(chainErr.Errs) {
		t.Fatal("AttemptedProviders and Errs must stay index-aligned")
	}
	for i, name := range chainErr.AttemptedProviders {
		var pe *ProviderError
		if !errors.As(chainErr.Errs[i], &pe) {
			t.Fatalf("Errs[%d] is not a ProviderError", i)
		}
		if pe.Provider != name {
			t.Errorf("Errs[%d].Provider = %q, want %q", i, pe.Provider, name)
		}
	}
}
