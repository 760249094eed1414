package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newLinksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Show predicted link candidates from a recorded run",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			runID, _ := cmd.Flags().GetString("run")
			topK, _ := cmd.Flags().GetInt("top")

			report, err := storedReport(context.Background(), root, runID)
			if err != nil {
				return err
			}

			candidates := report.LinkCandidates
			if topK > 0 && topK < len(candidates) {
				candidates = candidates[:topK]
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"run_id":     report.RunID,
					"candidates": candidates,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s: %d link candidates\n", report.RunID, len(candidates))
			for i, c := range candidates {
				fmt.Fprintf(out, "  %2d. %s -- %s  (%.4f)\n", i+1, c.A, c.B, c.Score)
			}
			return nil
		},
	}

	cmd.Flags().String("run", "", "Run ID (default: latest run)")
	cmd.Flags().Int("top", 0, "Limit to the top N candidates")
	return cmd
}
