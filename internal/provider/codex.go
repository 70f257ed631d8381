package provider

import (
	"regexp"

	"github.com/ariel-frischer/aicommit/internal/clean"
)

// codexNoisePattern matches the header block codex prints before the
// response (version banner, workdir/model/provider echoes, token counts).
var codexNoisePattern = regexp.MustCompile(`^(\[\d{4}-\d{2}-\d{2}.*|OpenAI Codex v.*|-{8,}|(workdir|model|provider|approval|sandbox|reasoning \w+|tokens used):.*)$`)

// Codex wraps the OpenAI Codex CLI.
// Command: codex exec <prompt>
type Codex struct {
	CLIProvider
}

// NewCodex creates a Codex CLI provider.
func NewCodex() *Codex {
	return &Codex{
		CLIProvider: CLIProvider{
			ProviderName: "codex",
			Cmd:          "codex",
			Delivery: PromptDelivery{
				Method: PromptMethodSubcommand,
				Flag:   "exec",
			},
			Transforms: []clean.Transform{
				clean.StripLinesMatching(codexNoisePattern),
			},
		},
	}
}
