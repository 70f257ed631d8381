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

// PromptPlaceholder is the token a custom command template must contain.
const PromptPlaceholder = "{{PROMPT}}"

// Custom runs a user-supplied command template with {{PROMPT}} expansion,
// for tools with invocation shapes none of the built-in providers cover.
// The template runs via `sh -c` so pipes and env prefixes work; the prompt
// itself is single-quote escaped before substitution so its content can
// never alter the command structure.
type Custom struct {
	template string
	timeout  time.Duration

	minLength         int
	conventionalTypes []string

	probe func(ctx context.Context, command string) bool
	run   func(ctx context.Context, spec execx.Spec) (string, error)
}

// NewCustom creates a custom template provider. The template must contain
// the {{PROMPT}} placeholder.
func NewCustom(template string) (*Custom, error) {
	if err := ValidateTemplate(template); err != nil {
		return nil, err
	}
	return &Custom{template: template}, nil
}

// ValidateTemplate checks that a command template is usable.
func ValidateTemplate(template string) error {
	if strings.TrimSpace(template) == "" {
		return fmt.Errorf("custom command template must not be empty")
	}
	if !strings.Contains(template, PromptPlaceholder) {
		return fmt.Errorf("custom command template must contain %s placeholder", PromptPlaceholder)
	}
	return nil
}

// Name returns "custom".
func (c *Custom) Name() string { return "custom" }

// Kind returns KindCLI.
func (c *Custom) Kind() Kind { return KindCLI }

// IsAvailable probes the first token of the template.
func (c *Custom) IsAvailable(ctx context.Context) bool {
	fields := strings.Fields(c.template)
	cmd := ""
	for _, f := range fields {
		// Skip env-var prefixes like KEY=value.
		if strings.Contains(f, "=") && !strings.HasPrefix(f, "=") {
			continue
		}
		cmd = f
		break
	}
	if cmd == "" {
		return false
	}
	prober := c.probe
	if prober == nil {
		prober = execx.CheckAvailable
	}
	return prober(ctx, cmd)
}

// GenerateCommitMessage expands the template and executes it via the shell.
func (c *Custom) GenerateCommitMessage(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if err := validateInputs(c.Name(), prompt, opts); err != nil {
		return "", err
	}
	if !c.IsAvailable(ctx) {
		return "", aerr.NewNotAvailableError(c.Name(), "custom command not found in PATH")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	if timeout <= 0 {
		timeout = DefaultCLITimeout
	}

	cmdStr := strings.ReplaceAll(c.template, PromptPlaceholder, shellQuote(prompt))

	runner := c.run
	if runner == nil {
		runner = execx.Run
	}
	raw, err := runner(ctx, execx.Spec{
		Command: "sh",
		Args:    []string{"-c", cmdStr},
		Dir:     opts.WorkDir,
		Timeout: timeout,
	})
	if err != nil {
		var timeoutErr *aerr.TimeoutError
		if errors.As(err, &timeoutErr) {
			return "", timeoutErr.WithProvider(c.Name(), "generateCommitMessage")
		}
		return "", aerr.NewProviderError(c.Name(), err.Error(), err)
	}

	text, err := clean.Parse(raw, clean.Options{MinLength: c.minLength})
	if err != nil {
		return "", aerr.NewMalformedOutputError(c.Name(), err.Error())
	}
	if c.conventionalTypes != nil {
		if err := clean.ValidateConventional(text, c.conventionalTypes); err != nil {
			return "", aerr.NewMalformedOutputError(c.Name(), err.Error())
		}
	}
	return text, nil
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
