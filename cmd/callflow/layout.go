package main

import (
	"encoding/json"
	"fmt"
	"io"

	"callflow-studio/internal/callrouting"
	"callflow-studio/internal/diagram"

	"github.com/spf13/cobra"
)

type layoutOptions struct {
	ops      []string
	mode     string
	format   string
	offset   int
	defaults string
}

var layoutOpts layoutOptions

// layoutCmd represents the layout command
var layoutCmd = &cobra.Command{
	Use:   "layout [snapshot-file]",
	Short: "Print the call-flow diagram for a configuration",
	Long: `Reads a YAML or JSON snapshot (the default configuration when omitted, "-" for stdin),
applies --mode and then each --op in order, and prints the diagram.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := layoutOpts
		opts.defaults, _ = cmd.Flags().GetString("defaults")
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return runLayout(cmd.InOrStdin(), cmd.OutOrStdout(), path, opts)
	},
}

func init() {
	layoutCmd.Flags().StringArrayVar(&layoutOpts.ops, "op", nil, "operation to apply, repeatable (see 'callflow ops')")
	layoutCmd.Flags().StringVar(&layoutOpts.mode, "mode", "", "select a routing mode before applying operations")
	layoutCmd.Flags().StringVar(&layoutOpts.format, "format", "json", "output format: json, mermaid or snapshot")
	layoutCmd.Flags().IntVar(&layoutOpts.offset, "offset", diagram.DefaultOffset, "grid spacing in pixels")
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(stdin io.Reader, out io.Writer, path string, opts layoutOptions) error {
	d, err := readDefaults(opts.defaults)
	if err != nil {
		return err
	}
	snap, err := readSnapshot(path, stdin, d)
	if err != nil {
		return err
	}
	cfg, err := callrouting.FromSnapshot(snap, d)
	if err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	if opts.mode != "" {
		kind, ok := callrouting.ParseModeKind(opts.mode)
		if !ok {
			return fmt.Errorf("unknown routing mode %q", opts.mode)
		}
		cfg = cfg.SelectRouting(kind)
	}
	for _, op := range opts.ops {
		if cfg, err = cfg.Apply(callrouting.Operation(op)); err != nil {
			return err
		}
	}

	g := diagram.NewLayout(opts.offset).Build(&cfg)

	switch opts.format {
	case "json":
		return writeJSON(out, g)
	case "snapshot":
		return writeJSON(out, cfg.Snapshot())
	case "mermaid":
		_, err := io.WriteString(out, diagram.Mermaid(g))
		return err
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
