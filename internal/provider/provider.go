// Package provider abstracts the external AI tools that can produce a
// commit message. It presents one uniform contract over CLI-backed tools
// (claude, gemini, codex, opencode, custom templates) and API-backed
// endpoints, so callers and the fallback chain never care which kind they
// are talking to.
package provider

import (
	"context"
	"time"
)

// Kind distinguishes command-line providers from network API providers.
type Kind string

const (
	// KindCLI marks a provider that invokes an external executable.
	KindCLI Kind = "cli"
	// KindAPI marks a provider that performs an HTTP request.
	KindAPI Kind = "api"
)

// Default timeouts. Per-call overrides take precedence over per-provider
// configuration, which takes precedence over these.
const (
	DefaultCLITimeout = 120 * time.Second
	DefaultAPITimeout = 30 * time.Second
)

// GenerateOptions are per-call overrides layered on top of a provider's
// configured defaults.
type GenerateOptions struct {
	// WorkDir is the working directory for CLI execution.
	WorkDir string
	// Timeout overrides the provider's default when positive.
	Timeout time.Duration
}

// Provider is the uniform contract every provider implements.
// All methods must be safe for concurrent use; providers hold no mutable
// state between calls, so each invocation is independent and safe to retry
// from the caller's side.
type Provider interface {
	// Name returns the unique identifier for the provider (e.g. "claude").
	Name() string

	// Kind reports whether the provider is CLI- or API-backed.
	Kind() Kind

	// IsAvailable reports whether the underlying tool or endpoint is
	// reachable. The check is advisory; a true result does not guarantee
	// the subsequent generation call succeeds.
	IsAvailable(ctx context.Context) bool

	// GenerateCommitMessage produces a cleaned, validated message for the
	// prompt, or one of the typed errors in internal/aerr.
	GenerateCommitMessage(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}
