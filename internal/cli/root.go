// Package cli provides the Cobra-based commands for aicommit: message
// generation (the root command), doctor, init, and version.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aicommit",
	Short: "AI-generated commit messages for staged changes",
	Long: `aicommit generates a commit message for the currently staged changes by
delegating to an ordered chain of AI CLI tools (claude, gemini, codex,
opencode, a custom command, or an HTTP API) and falling back through the
chain until one succeeds.`,
	Example: `  # Generate a message for the staged changes
  aicommit

  # Generate and commit in one step
  aicommit --commit

  # Force a single provider and a tighter timeout
  aicommit --provider claude --timeout 60

  # Check which providers are usable on this system
  aicommit doctor`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default .aicommit/config.json)")

	rootCmd.Flags().String("provider", "", "Use a single provider instead of the configured chain")
	rootCmd.Flags().Int("timeout", 0, "Per-call timeout override in seconds")
	rootCmd.Flags().Bool("conventional", false, "Require a conventional-format first line")
	rootCmd.Flags().String("instructions", "", "Additional instructions appended to the prompt")
	rootCmd.Flags().Bool("no-fallback", false, "Fail instead of composing a rule-based message when all providers fail")
	rootCmd.Flags().Bool("commit", false, "Run 'git commit' with the generated message")
}
