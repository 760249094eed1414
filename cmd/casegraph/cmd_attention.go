package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newAttentionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attention",
		Short: "Show attention focus areas from a recorded run",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			runID, _ := cmd.Flags().GetString("run")
			focus, _ := cmd.Flags().GetString("focus")

			report, err := storedReport(context.Background(), root, runID)
			if err != nil {
				return err
			}

			heads := report.AttentionHeads
			if focus != "" {
				filtered := heads[:0:0]
				for _, h := range heads {
					if h.Focus == focus {
						filtered = append(filtered, h)
					}
				}
				if len(filtered) == 0 {
					return fmt.Errorf("unknown focus area: %s", focus)
				}
				heads = filtered
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"run_id": report.RunID,
					"heads":  heads,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", report.RunID)
			for _, h := range heads {
				fmt.Fprintf(out, "  %s (%d nodes)\n", h.Focus, len(h.Nodes))
				for _, n := range h.Nodes {
					fmt.Fprintf(out, "      %-40s %.3f\n", n.ID, n.Score)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("run", "", "Run ID (default: latest run)")
	cmd.Flags().String("focus", "", "Restrict output to one focus area")
	return cmd
}
