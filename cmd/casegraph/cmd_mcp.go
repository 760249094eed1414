package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/analyticase/casegraph/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run the MCP server over stdio",
		Long: `Start a Model Context Protocol server exposing casegraph tools
(casegraph_integrate, casegraph_report, casegraph_links,
casegraph_communities, casegraph_attention) over stdio transport.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")

			server, err := mcp.NewServer(&mcp.Config{
				Name:    "casegraph",
				Version: version,
				Root:    root,
			})
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}

			return server.Run(context.Background())
		},
	}
}
