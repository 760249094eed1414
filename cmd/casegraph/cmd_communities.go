package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/analyticase/casegraph/internal/integrate"
	"github.com/analyticase/casegraph/internal/runstore"
)

// storedReport fetches a report by run ID, or the latest run when id is empty.
func storedReport(ctx context.Context, root, id string) (*integrate.Report, error) {
	runs, err := runstore.Open(root)
	if err != nil {
		return nil, err
	}
	defer runs.Close()

	if id != "" {
		return runs.GetReport(ctx, id)
	}
	return runs.LatestReport(ctx)
}

func newCommunitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "communities",
		Short: "Show detected communities from a recorded run",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			runID, _ := cmd.Flags().GetString("run")

			report, err := storedReport(context.Background(), root, runID)
			if err != nil {
				return err
			}

			// Group members by label for readable output.
			members := make(map[int][]string)
			for id, label := range report.CommunityAssignments {
				members[label] = append(members[label], id)
			}
			labels := make([]int, 0, len(members))
			for label := range members {
				sort.Strings(members[label])
				labels = append(labels, label)
			}
			sort.Ints(labels)

			if jsonOut {
				grouped := make(map[string][]string, len(members))
				for label, ids := range members {
					grouped[fmt.Sprintf("%d", label)] = ids
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"run_id":      report.RunID,
					"communities": report.Communities,
					"members":     grouped,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s: %d communities\n", report.RunID, report.Communities)
			for _, label := range labels {
				fmt.Fprintf(out, "  [%d] %d nodes\n", label, len(members[label]))
				for _, id := range members[label] {
					fmt.Fprintf(out, "      %s\n", id)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("run", "", "Run ID (default: latest run)")
	return cmd
}
