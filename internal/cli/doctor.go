package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/aicommit/internal/config"
	"github.com/ariel-frischer/aicommit/internal/health"
	"github.com/ariel-frischer/aicommit/internal/progress"
	"github.com/ariel-frischer/aicommit/internal/provider"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check git and provider availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		reg, err := provider.NewRegistryFromConfigs(cfg.ProviderConfigs())
		if err != nil {
			return err
		}

		report := health.RunChecks(cmd.Context(), reg)
		symbols := progress.SelectSymbols(progress.DetectTerminalCapabilities())
		fmt.Print(health.FormatReport(report, symbols))

		if !report.Passed {
			return fmt.Errorf("no usable provider found (install one of: %v)", cfg.Providers)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
