// cmd/root.go
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lsmtune",
	Short: "Distributionally-robust LSM-tree tuning",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(tuneCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(uncertaintyCmd)
}
