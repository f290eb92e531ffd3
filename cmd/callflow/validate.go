package main

import (
	"fmt"
	"io"

	"callflow-studio/internal/callrouting"
	"callflow-studio/internal/diagram"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <snapshot-file>",
	Short: "Check a snapshot and the diagram it produces",
	Long:  `Reports conflicting routing modes, too many sequential numbers, or a malformed diagram.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, _ := cmd.Flags().GetString("defaults")
		return runValidate(cmd.InOrStdin(), cmd.OutOrStdout(), args[0], defaults)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(stdin io.Reader, out io.Writer, path, defaultsPath string) error {
	d, err := readDefaults(defaultsPath)
	if err != nil {
		return err
	}
	snap, err := readSnapshot(path, stdin, d)
	if err != nil {
		return err
	}
	cfg, err := callrouting.FromSnapshot(snap, d)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	g := diagram.NewLayout(0).Build(&cfg)
	if err := g.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	_, err = fmt.Fprintf(out, "snapshot is valid: routing %s, %d nodes, %d edges\n", cfg.RoutingType(), len(g.Nodes), len(g.Edges))
	return err
}
