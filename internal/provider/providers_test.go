package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/aicommit/internal/execx"
)

func TestBuiltinProviderWiring(t *testing.T) {
	tests := map[string]struct {
		p        Provider
		wantName string
	}{
		"claude":   {p: NewClaude(), wantName: "claude"},
		"gemini":   {p: NewGemini(), wantName: "gemini"},
		"codex":    {p: NewCodex(), wantName: "codex"},
		"opencode": {p: NewOpenCode(), wantName: "opencode"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.p.Name())
			assert.Equal(t, KindCLI, tt.p.Kind())
		})
	}
}

func TestClaudeCommandLine(t *testing.T) {
	c := NewClaude()
	spec := c.buildSpec("the prompt", GenerateOptions{})

	assert.Equal(t, "claude", spec.Command)
	assert.Equal(t, []string{"-p", "--output-format", "json"}, spec.Args)
	assert.Equal(t, "the prompt", spec.Input, "prompt goes to stdin, not argv")
}

func TestClaudeParsesJSONEnvelope(t *testing.T) {
	c := NewClaude()
	c.probe = alwaysAvailable
	c.run = fixedOutput(`{"type":"result","subtype":"success","result":"feat: add session resume","is_error":false}`)

	msg, err := c.GenerateCommitMessage(context.Background(), "prompt", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "feat: add session resume", msg)
}

func TestClaudePlainTextFallback(t *testing.T) {
	c := NewClaude()
	c.probe = alwaysAvailable
	c.run = fixedOutput("feat: plain output from an older CLI\n")

	msg, err := c.GenerateCommitMessage(context.Background(), "prompt", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "feat: plain output from an older CLI", msg)
}

func TestGeminiStripsNoise(t *testing.T) {
	g := NewGemini()
	g.probe = alwaysAvailable
	g.run = fixedOutput("Loaded cached credentials.\n[WARN] flag deprecated\nfeat: add manifest validation\n")

	msg, err := g.GenerateCommitMessage(context.Background(), "prompt", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "feat: add manifest validation", msg)
}

func TestGeminiCommandLine(t *testing.T) {
	g := NewGemini()
	spec := g.buildSpec("the prompt", GenerateOptions{})

	assert.Equal(t, "gemini", spec.Command)
	assert.Equal(t, []string{"-p", "the prompt"}, spec.Args)
}

func TestCodexStripsHeaderBlock(t *testing.T) {
	c := NewCodex()
	c.probe = alwaysAvailable
	c.run = fixedOutput(`[2025-03-01T12:00:00] OpenAI Codex v0.9.0
--------
workdir: /repo
model: o4-mini
provider: openai
tokens used: 1543
fix: close response body on retry
`)

	msg, err := c.GenerateCommitMessage(context.Background(), "prompt", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "fix: close response body on retry", msg)
}

func TestCodexCommandLine(t *testing.T) {
	c := NewCodex()
	spec := c.buildSpec("the prompt", GenerateOptions{})

	assert.Equal(t, "codex", spec.Command)
	assert.Equal(t, []string{"exec", "the prompt"}, spec.Args)
}

func TestOpenCodeCommandLine(t *testing.T) {
	o := NewOpenCode()
	spec := o.buildSpec("the prompt", GenerateOptions{})

	assert.Equal(t, "opencode", spec.Command)
	assert.Equal(t, []string{"run", "the prompt"}, spec.Args)
}

func TestProvidersSatisfyInterface(t *testing.T) {
	var _ Provider = NewClaude()
	var _ Provider = NewGemini()
	var _ Provider = NewCodex()
	var _ Provider = NewOpenCode()
	var _ Provider = &Custom{}
	var _ Provider = &API{}
}

func TestConcreteProvidersShareSpecBuilder(t *testing.T) {
	// A WorkDir set on the options must reach every provider's process spec.
	for _, p := range []*CLIProvider{&NewClaude().CLIProvider, &NewGemini().CLIProvider, &NewCodex().CLIProvider, &NewOpenCode().CLIProvider} {
		spec := p.buildSpec("prompt", GenerateOptions{WorkDir: "/work"})
		assert.Equal(t, "/work", spec.Dir, p.ProviderName)
	}
}

func TestProviderTimeoutDefaultsFlowToSpec(t *testing.T) {
	var captured execx.Spec
	g := NewGemini()
	g.probe = alwaysAvailable
	g.run = func(_ context.Context, spec execx.Spec) (string, error) {
		captured = spec
		return "feat: observe defaults", nil
	}

	_, err := g.GenerateCommitMessage(context.Background(), "prompt", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultCLITimeout, captured.Timeout)
}
