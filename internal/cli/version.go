package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/aicommit/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aicommit %s (commit %s, built %s)\n", build.Version, build.Commit, build.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
