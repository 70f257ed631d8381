package provider

import (
	"regexp"

	"github.com/ariel-frischer/aicommit/internal/clean"
)

// geminiNoisePattern matches status lines the Gemini CLI interleaves with
// the payload on stderr-less terminals.
var geminiNoisePattern = regexp.MustCompile(`^(Loaded cached credentials\.|Data collection is .*|\[WARN\].*)$`)

// Gemini wraps the Gemini CLI.
// Command: gemini -p <prompt>
type Gemini struct {
	CLIProvider
}

// NewGemini creates a Gemini CLI provider.
func NewGemini() *Gemini {
	return &Gemini{
		CLIProvider: CLIProvider{
			ProviderName: "gemini",
			Cmd:          "gemini",
			Delivery: PromptDelivery{
				Method: PromptMethodArg,
				Flag:   "-p",
			},
			Transforms: []clean.Transform{
				clean.StripLinesMatching(geminiNoisePattern),
			},
		},
	}
}
