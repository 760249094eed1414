package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/analyticase/casegraph/internal/config"
	"github.com/analyticase/casegraph/internal/integrate"
	"github.com/analyticase/casegraph/internal/logging"
	"github.com/analyticase/casegraph/internal/runstore"
)

func newIntegrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Run a full integration and record the report",
		Long: `Build the unified hypergraph from the legal framework and simulation
output, create cross-domain mappings, compute embeddings, and record
communities, link candidates, and attention focus areas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			lexDir, _ := cmd.Flags().GetString("lex-dir")
			simFile, _ := cmd.Flags().GetString("sim-file")
			seedFlag, _ := cmd.Flags().GetInt64("seed")

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Engine.Seed = seedFlag
			}

			logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
			trace := logging.NewTraceLogger(filepath.Join(root, config.Dir), cfg.Logging.Level)
			defer trace.Close()

			inputs, err := loadRunInputs(cfg, lexDir, simFile)
			if err != nil {
				return err
			}

			runner, err := integrate.NewRunner(cfg.Engine, logger)
			if err != nil {
				return err
			}
			runner.SetTrace(trace)

			ctx := context.Background()
			start := time.Now()
			report, _, err := runner.Run(ctx, inputs.lexNodes, inputs.lexEdges, inputs.adNodes, inputs.adEdges)
			if err != nil {
				return fmt.Errorf("integration failed: %w", err)
			}
			trace.Stage("integrate", time.Since(start), map[string]any{
				"run_id":        report.RunID,
				"lex_nodes":     report.LexNodes,
				"ad_nodes":      report.ADNodes,
				"mapping_edges": report.MappingEdges,
			})

			runs, err := runstore.Open(root)
			if err != nil {
				return err
			}
			defer runs.Close()
			if err := runs.SaveReport(ctx, report); err != nil {
				return fmt.Errorf("save report: %w", err)
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", report.RunID)
			fmt.Fprintf(out, "  Nodes:        %d legal, %d simulation\n", report.LexNodes, report.ADNodes)
			fmt.Fprintf(out, "  Edges:        %d legal, %d simulation, %d mapping\n",
				report.LexEdges, report.ADEdges, report.MappingEdges)
			fmt.Fprintf(out, "  Unmapped:     %d simulation nodes\n", report.UnmappedADNodes)
			fmt.Fprintf(out, "  Embeddings:   %d dimensions\n", report.EmbeddingDim)
			fmt.Fprintf(out, "  Communities:  %d\n", report.Communities)
			fmt.Fprintf(out, "  Link ideas:   %d candidates\n", len(report.LinkCandidates))
			return nil
		},
	}

	cmd.Flags().String("lex-dir", "", "Directory of legal framework YAML files")
	cmd.Flags().String("sim-file", "", "Simulation output JSON file (default: built-in sample)")
	cmd.Flags().Int64("seed", 0, "Embedding seed override")
	return cmd
}
