package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ariel-frischer/aicommit/internal/aerr"
	"github.com/ariel-frischer/aicommit/internal/clean"
	"github.com/ariel-frischer/aicommit/internal/execx"
)

// PromptMethod defines how a prompt is passed to a provider CLI.
type PromptMethod string

const (
	// PromptMethodArg passes the prompt via a flag (e.g. "-p").
	PromptMethodArg PromptMethod = "arg"

	// PromptMethodPositional passes the prompt as a positional argument.
	PromptMethodPositional PromptMethod = "positional"

	// PromptMethodSubcommand uses a subcommand with a positional prompt.
	// Example: codex exec "write the message"
	PromptMethodSubcommand PromptMethod = "subcommand"

	// PromptMethodStdin writes the prompt to the process's stdin.
	PromptMethodStdin PromptMethod = "stdin"
)

// PromptDelivery describes how a CLI provider receives its prompt.
type PromptDelivery struct {
	// Method specifies the prompt passing pattern.
	Method PromptMethod
	// Flag is the flag or subcommand name, depending on Method.
	Flag string
}

// CLIProvider is the shared implementation for all CLI-backed providers.
// A concrete provider supplies only the executable name, argument list,
// prompt delivery, and its tool-specific cleaning transforms; everything
// else lives here.
//
// There is no persistent state across invocations: each call runs
// availability check, execution, and parsing from scratch.
type CLIProvider struct {
	// ProviderName is the unique identifier (e.g. "claude").
	ProviderName string

	// Cmd is the executable name, resolved via PATH.
	Cmd string

	// BaseArgs are arguments always passed before the prompt.
	BaseArgs []string

	// Delivery describes how the prompt reaches the tool.
	Delivery PromptDelivery

	// ExpectStructured hints the parser that the tool was asked for a
	// structured (JSON) envelope.
	ExpectStructured bool

	// Transforms are tool-specific cleaning rules applied after the shared
	// baseline cleaner, in order.
	Transforms []clean.Transform

	// Timeout is the per-provider default; zero means DefaultCLITimeout.
	Timeout time.Duration

	// MinLength overrides the minimal-format threshold; zero means the
	// package default.
	MinLength int

	// ConventionalTypes, when non-nil, makes the provider reject messages
	// whose first line is not conventional-format with this vocabulary.
	ConventionalTypes []string

	// probe and run allow tests to substitute the execution layer.
	// Nil means the real execx functions.
	probe func(ctx context.Context, command string) bool
	run   func(ctx context.Context, spec execx.Spec) (string, error)
}

// Name returns the provider's unique identifier.
func (p *CLIProvider) Name() string { return p.ProviderName }

// Kind returns KindCLI.
func (p *CLIProvider) Kind() Kind { return KindCLI }

// IsAvailable probes the tool with a lightweight version/help invocation.
func (p *CLIProvider) IsAvailable(ctx context.Context) bool {
	return p.prober()(ctx, p.Cmd)
}

// GenerateCommitMessage validates inputs, probes availability, executes the
// tool, and parses its output. State machine per invocation:
// idle -> availability-checked -> executing -> parsing -> done | failed.
func (p *CLIProvider) GenerateCommitMessage(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if err := validateInputs(p.ProviderName, prompt, opts); err != nil {
		return "", err
	}

	if !p.IsAvailable(ctx) {
		return "", aerr.NewNotAvailableError(p.ProviderName,
			fmt.Sprintf("CLI %q not found in PATH or not responding (install it or check your PATH)", p.Cmd))
	}

	spec := p.buildSpec(prompt, opts)
	raw, err := p.runner()(ctx, spec)
	if err != nil {
		var timeoutErr *aerr.TimeoutError
		if errors.As(err, &timeoutErr) {
			// Re-attribute so the caller sees which provider timed out,
			// not just which process.
			return "", timeoutErr.WithProvider(p.ProviderName, "generateCommitMessage")
		}
		var provErr *aerr.ProviderError
		if errors.As(err, &provErr) {
			return "", aerr.NewProviderError(p.ProviderName, provErr.Message, err)
		}
		return "", aerr.NewProviderError(p.ProviderName, err.Error(), err)
	}

	return p.parse(raw)
}

// buildSpec constructs the process invocation for the prompt.
func (p *CLIProvider) buildSpec(prompt string, opts GenerateOptions) execx.Spec {
	spec := execx.Spec{
		Command: p.Cmd,
		Args:    append([]string(nil), p.BaseArgs...),
		Dir:     opts.WorkDir,
		Timeout: p.effectiveTimeout(opts),
	}

	switch p.Delivery.Method {
	case PromptMethodArg:
		spec.Args = append(spec.Args, p.Delivery.Flag, prompt)
	case PromptMethodPositional:
		spec.Args = append(spec.Args, prompt)
	case PromptMethodSubcommand:
		spec.Args = append([]string{p.Delivery.Flag}, append(spec.Args, prompt)...)
	case PromptMethodStdin:
		spec.Input = prompt
	}
	return spec
}

// parse runs the shared baseline cleaner, the provider-specific transforms,
// and the validation policy.
func (p *CLIProvider) parse(raw string) (string, error) {
	text, err := clean.Parse(raw, clean.Options{
		ExpectStructured: p.ExpectStructured,
		AllowEmpty:       true,
	})
	if err != nil {
		return "", aerr.NewMalformedOutputError(p.ProviderName, err.Error())
	}

	text = strings.TrimSpace(clean.Apply(text, p.Transforms))

	if err := clean.ValidateMinimalFormat(text, p.MinLength); err != nil {
		return "", aerr.NewMalformedOutputError(p.ProviderName, err.Error())
	}
	if p.ConventionalTypes != nil {
		if err := clean.ValidateConventional(text, p.ConventionalTypes); err != nil {
			return "", aerr.NewMalformedOutputError(p.ProviderName, err.Error())
		}
	}
	return text, nil
}

// effectiveTimeout applies the override precedence:
// call-level > provider default > global CLI default.
func (p *CLIProvider) effectiveTimeout(opts GenerateOptions) time.Duration {
	if opts.Timeout > 0 {
		return opts.Timeout
	}
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultCLITimeout
}

func (p *CLIProvider) prober() func(context.Context, string) bool {
	if p.probe != nil {
		return p.probe
	}
	return execx.CheckAvailable
}

func (p *CLIProvider) runner() func(context.Context, execx.Spec) (string, error) {
	if p.run != nil {
		return p.run
	}
	return execx.Run
}

// validateInputs fails fast on malformed inputs before any process or
// network activity.
func validateInputs(name, prompt string, opts GenerateOptions) error {
	if prompt == "" {
		return aerr.NewNotAvailableError(name, "prompt must not be empty")
	}
	if opts.Timeout < 0 {
		return aerr.NewNotAvailableError(name, fmt.Sprintf("timeout must be positive, got %s", opts.Timeout))
	}
	return nil
}
