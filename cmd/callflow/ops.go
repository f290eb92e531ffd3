package main

import (
	"fmt"

	"callflow-studio/internal/callrouting"

	"github.com/spf13/cobra"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the routing form operations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, op := range callrouting.Operations() {
			fmt.Fprintln(cmd.OutOrStdout(), op)
		}
	},
}

func init() {
	rootCmd.AddCommand(opsCmd)
}
