package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/aicommit/internal/aerr"
	"github.com/ariel-frischer/aicommit/internal/chain"
	"github.com/ariel-frischer/aicommit/internal/compose"
	"github.com/ariel-frischer/aicommit/internal/config"
	"github.com/ariel-frischer/aicommit/internal/gitx"
	"github.com/ariel-frischer/aicommit/internal/progress"
	"github.com/ariel-frischer/aicommit/internal/promptx"
	"github.com/ariel-frischer/aicommit/internal/provider"
)

// runGenerate is the root command: collect the staged diff, build the
// prompt, run the fallback chain, and print the message to stdout.
func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	singleProvider, _ := cmd.Flags().GetString("provider")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	conventional, _ := cmd.Flags().GetBool("conventional")
	instructions, _ := cmd.Flags().GetString("instructions")
	noFallback, _ := cmd.Flags().GetBool("no-fallback")
	doCommit, _ := cmd.Flags().GetBool("commit")

	if conventional {
		cfg.RequireConventional = true
	}

	workDir, err := os.Getwd()
	if err != nil {
		return err
	}
	if !gitx.IsRepository(ctx, workDir) {
		return fmt.Errorf("not a git repository (run aicommit inside a repository)")
	}
	if !gitx.HasStagedChanges(ctx, workDir) {
		return fmt.Errorf("no staged changes (stage files with 'git add' first)")
	}

	gitCtx, err := gitx.StagedContext(ctx, workDir, cfg.MaxDiffFiles)
	if err != nil {
		return err
	}

	prompt := promptx.Build(gitCtx, promptx.Options{
		Conventional: cfg.RequireConventional,
		Types:        cfg.ConventionalTypes,
		Instructions: instructions,
	})

	c, err := buildChain(cfg, singleProvider)
	if err != nil {
		return err
	}

	caps := progress.DetectTerminalCapabilities()
	var display *progress.Display
	if cfg.ShowProgress {
		display = progress.NewDisplay(caps)
		c.Reporter = display
	}

	opts := provider.GenerateOptions{WorkDir: workDir}
	if timeoutSec > 0 {
		opts.Timeout = time.Duration(timeoutSec) * time.Second
	}

	message, err := c.GenerateCommitMessage(ctx, prompt, opts)
	if display != nil {
		display.Stop()
	}
	if err != nil {
		var chainErr *aerr.ChainError
		if errors.As(err, &chainErr) && !noFallback {
			fmt.Fprintf(os.Stderr, "%v\nfalling back to rule-based message\n", chainErr)
			message = compose.Fallback(gitCtx.NameStatus)
		} else {
			return err
		}
	}

	if doCommit {
		if _, err := gitx.Git(ctx, workDir, "commit", "-m", message); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "committed")
	}

	fmt.Println(message)
	return nil
}

// buildChain constructs the provider chain from configuration, optionally
// narrowed to a single provider by the --provider flag. Providers are
// registered by name and resolved back in configured chain order.
func buildChain(cfg *config.Configuration, singleProvider string) (*chain.Chain, error) {
	reg, err := provider.NewRegistryFromConfigs(cfg.ProviderConfigs())
	if err != nil {
		return nil, err
	}

	if singleProvider != "" {
		p := reg.Get(singleProvider)
		if p == nil {
			return nil, fmt.Errorf("provider %q is not in the configured chain %v", singleProvider, cfg.Providers)
		}
		return chain.New([]provider.Provider{p})
	}

	providers := make([]provider.Provider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		providers = append(providers, reg.Get(name))
	}
	return chain.New(providers)
}
