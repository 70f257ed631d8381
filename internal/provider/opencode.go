package provider

// OpenCode wraps the OpenCode CLI.
// Command: opencode run <prompt>
type OpenCode struct {
	CLIProvider
}

// NewOpenCode creates an OpenCode CLI provider.
func NewOpenCode() *OpenCode {
	return &OpenCode{
		CLIProvider: CLIProvider{
			ProviderName: "opencode",
			Cmd:          "opencode",
			Delivery: PromptDelivery{
				Method: PromptMethodSubcommand,
				Flag:   "run",
			},
		},
	}
}
