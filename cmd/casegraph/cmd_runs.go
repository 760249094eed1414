package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/analyticase/casegraph/internal/runstore"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded integration runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")
			export, _ := cmd.Flags().GetString("export")

			runs, err := runstore.Open(root)
			if err != nil {
				return err
			}
			defer runs.Close()

			ctx := context.Background()

			if export != "" {
				if err := runs.ExportJSONL(ctx, export); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported runs to %s\n", export)
				return nil
			}

			summaries, err := runs.ListRuns(ctx, limit)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summaries)
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No runs recorded. Run 'casegraph integrate' first.")
				return nil
			}
			for _, s := range summaries {
				fmt.Fprintf(out, "%s  %s  seed=%d  nodes=%d/%d  mappings=%d  communities=%d\n",
					s.RunID,
					s.CreatedAt.Format(time.RFC3339),
					s.Seed,
					s.LexNodes, s.ADNodes,
					s.MappingEdges,
					s.Communities)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum runs to list")
	cmd.Flags().String("export", "", "Export all reports to a JSONL file instead of listing")
	return cmd
}
