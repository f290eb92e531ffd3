package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "callflow",
	Short: "Preview call routing configurations as call-flow diagrams",
	Long: `callflow applies routing form operations to a configuration snapshot and
prints the resulting diagram, either as renderer JSON or as a Mermaid flowchart.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("defaults", "", "YAML or JSON file with default people and numbers (demo data when empty)")
}
