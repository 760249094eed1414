package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "casegraph",
		Short: "Casegraph - legal knowledge and simulation hypergraph integration",
		Long: `casegraph merges a legal knowledge hypergraph with an agent-based
simulation hypergraph into one unified graph.

It maps simulation agents, events, and stocks onto their legal
counterparts, computes structural embeddings, and reports communities,
predicted links, and attention focus areas over the combined graph.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newIntegrateCmd(),
		newRunsCmd(),
		newCommunitiesCmd(),
		newLinksCmd(),
		newAttentionCmd(),
		newGraphCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
