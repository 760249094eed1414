package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/analyticase/casegraph/internal/config"
	"github.com/analyticase/casegraph/internal/integrate"
	"github.com/analyticase/casegraph/internal/visualization"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Visualize the unified hypergraph",
		Long: `Output the unified hypergraph in DOT (Graphviz) or JSON format.

The graph is rebuilt from the configured inputs; since runs are
deterministic for a fixed seed, the output matches the recorded run
for the same inputs and configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			format, _ := cmd.Flags().GetString("format")
			lexDir, _ := cmd.Flags().GetString("lex-dir")
			simFile, _ := cmd.Flags().GetString("sim-file")

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			inputs, err := loadRunInputs(cfg, lexDir, simFile)
			if err != nil {
				return err
			}

			runner, err := integrate.NewRunner(cfg.Engine, nil)
			if err != nil {
				return err
			}
			report, store, err := runner.Run(context.Background(),
				inputs.lexNodes, inputs.lexEdges, inputs.adNodes, inputs.adEdges)
			if err != nil {
				return fmt.Errorf("integration failed: %w", err)
			}

			switch visualization.Format(format) {
			case visualization.FormatDOT:
				dot, err := visualization.RenderDOT(store, report.CommunityAssignments)
				if err != nil {
					return fmt.Errorf("render DOT: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), dot)

			case visualization.FormatJSON:
				result, err := visualization.RenderJSON(store, report.CommunityAssignments)
				if err != nil {
					return fmt.Errorf("render JSON: %w", err)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}

			default:
				return fmt.Errorf("unsupported format %q (use 'dot' or 'json')", format)
			}
			return nil
		},
	}

	cmd.Flags().String("format", "dot", "Output format: dot or json")
	cmd.Flags().String("lex-dir", "", "Directory of legal framework YAML files")
	cmd.Flags().String("sim-file", "", "Simulation output JSON file (default: built-in sample)")
	return cmd
}
