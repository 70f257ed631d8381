package provider

// Claude wraps the Claude Code CLI.
// Command: claude -p --output-format json, prompt on stdin.
type Claude struct {
	CLIProvider
}

// NewClaude creates a Claude Code provider. The CLI is asked for a JSON
// envelope; when it ignores that (older versions), the parser falls back to
// plain text.
func NewClaude() *Claude {
	return &Claude{
		CLIProvider: CLIProvider{
			ProviderName: "claude",
			Cmd:          "claude",
			BaseArgs:     []string{"-p", "--output-format", "json"},
			Delivery: PromptDelivery{
				Method: PromptMethodStdin,
			},
			ExpectStructured: true,
		},
	}
}
