package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/analyticase/casegraph/internal/attention"
	"github.com/analyticase/casegraph/internal/integrate"
	"github.com/analyticase/casegraph/internal/lexload"
	"github.com/analyticase/casegraph/internal/simload"
)

// registerTools registers all casegraph MCP tools with the server.
func (s *Server) registerTools() error {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "casegraph_integrate",
		Description: "Run a full integration: build the unified legal/simulation hypergraph, map cross-domain nodes, compute embeddings, and detect communities, link candidates, and attention focus areas",
	}, s.handleIntegrate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "casegraph_report",
		Description: "Get the full report of a stored integration run (latest by default)",
	}, s.handleReport)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "casegraph_links",
		Description: "Get predicted link candidates between unconnected nodes, ranked by embedding similarity",
	}, s.handleLinks)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "casegraph_communities",
		Description: "Get detected communities of the unified hypergraph, grouped by community label",
	}, s.handleCommunities)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "casegraph_attention",
		Description: "Get attention focus areas (legal entities, temporal events, evidence chains, ...) and their top-scored nodes",
	}, s.handleAttention)

	return nil
}

// registerResources registers MCP resources for auto-loading into context.
func (s *Server) registerResources() error {
	s.server.AddResource(&sdk.Resource{
		URI:         "casegraph://runs/latest",
		Name:        "casegraph-latest-run",
		Description: "Summary of the most recent integration run: graph sizes, mapping coverage, and community structure.",
		MIMEType:    "application/json",
	}, s.handleLatestRunResource)

	return nil
}

// handleLatestRunResource returns the latest run's report as JSON.
func (s *Server) handleLatestRunResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	report, err := s.runs.LatestReport(ctx)
	if err != nil {
		return &sdk.ReadResourceResult{
			Contents: []*sdk.ResourceContents{
				{
					URI:      "casegraph://runs/latest",
					MIMEType: "application/json",
					Text:     `{"message": "no integration runs recorded yet; run casegraph_integrate first"}`,
				},
			},
		}, nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{
			{
				URI:      "casegraph://runs/latest",
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

func (s *Server) handleIntegrate(ctx context.Context, req *sdk.CallToolRequest, args IntegrateInput) (*sdk.CallToolResult, IntegrateOutput, error) {
	lexDir := args.LexDir
	if lexDir == "" {
		lexDir = s.config.Inputs.LexDir
	}
	simFile := args.SimFile
	if simFile == "" {
		simFile = s.config.Inputs.SimFile
	}

	var lexNodes []lexload.Record
	var lexEdges []lexload.EdgeRecord
	if lexDir != "" {
		var err error
		lexNodes, lexEdges, err = lexload.LoadDir(lexDir)
		if err != nil {
			return nil, IntegrateOutput{}, fmt.Errorf("load legal framework: %w", err)
		}
	}

	var output *simload.Output
	if simFile != "" {
		var err error
		output, err = simload.LoadFile(simFile)
		if err != nil {
			return nil, IntegrateOutput{}, fmt.Errorf("load simulation output: %w", err)
		}
	} else {
		output = simload.SampleScenario()
	}
	adNodes, adEdges := output.Records()

	engineConfig := s.config.Engine
	if args.Seed != nil {
		engineConfig.Seed = *args.Seed
	}

	runner, err := integrate.NewRunner(engineConfig, nil)
	if err != nil {
		return nil, IntegrateOutput{}, err
	}

	report, _, err := runner.Run(ctx, lexNodes, lexEdges, adNodes, adEdges)
	if err != nil {
		return nil, IntegrateOutput{}, fmt.Errorf("integration failed: %w", err)
	}

	if err := s.runs.SaveReport(ctx, report); err != nil {
		return nil, IntegrateOutput{}, fmt.Errorf("save report: %w", err)
	}

	return nil, IntegrateOutput{
		RunID:           report.RunID,
		LexNodes:        report.LexNodes,
		ADNodes:         report.ADNodes,
		MappingEdges:    report.MappingEdges,
		UnmappedADNodes: report.UnmappedADNodes,
		Unmapped:        report.Unmapped,
		Communities:     report.Communities,
		LinkCandidates:  len(report.LinkCandidates),
		Message: fmt.Sprintf("integrated %d legal and %d simulation nodes: %d mappings, %d communities",
			report.LexNodes, report.ADNodes, report.MappingEdges, report.Communities),
	}, nil
}

func (s *Server) handleReport(ctx context.Context, req *sdk.CallToolRequest, args ReportInput) (*sdk.CallToolResult, ReportOutput, error) {
	report, err := s.reportFor(ctx, args.RunID)
	if err != nil {
		return nil, ReportOutput{}, err
	}

	// Round-trip through JSON for a schema-free map view.
	data, err := json.Marshal(report)
	if err != nil {
		return nil, ReportOutput{}, fmt.Errorf("marshal report: %w", err)
	}
	var view map[string]interface{}
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, ReportOutput{}, fmt.Errorf("unmarshal report: %w", err)
	}

	return nil, ReportOutput{Report: view}, nil
}

func (s *Server) handleLinks(ctx context.Context, req *sdk.CallToolRequest, args LinksInput) (*sdk.CallToolResult, LinksOutput, error) {
	report, err := s.reportFor(ctx, args.RunID)
	if err != nil {
		return nil, LinksOutput{}, err
	}

	candidates := report.LinkCandidates
	if args.TopK > 0 && args.TopK < len(candidates) {
		candidates = candidates[:args.TopK]
	}

	return nil, LinksOutput{
		RunID:      report.RunID,
		Candidates: candidates,
		Count:      len(candidates),
	}, nil
}

func (s *Server) handleCommunities(ctx context.Context, req *sdk.CallToolRequest, args CommunitiesInput) (*sdk.CallToolResult, CommunitiesOutput, error) {
	report, err := s.reportFor(ctx, args.RunID)
	if err != nil {
		return nil, CommunitiesOutput{}, err
	}

	members := make(map[string][]string)
	for id, label := range report.CommunityAssignments {
		key := fmt.Sprintf("%d", label)
		members[key] = append(members[key], id)
	}
	for _, ids := range members {
		sort.Strings(ids)
	}

	return nil, CommunitiesOutput{
		RunID:       report.RunID,
		Communities: report.Communities,
		Members:     members,
	}, nil
}

func (s *Server) handleAttention(ctx context.Context, req *sdk.CallToolRequest, args AttentionInput) (*sdk.CallToolResult, AttentionOutput, error) {
	report, err := s.reportFor(ctx, args.RunID)
	if err != nil {
		return nil, AttentionOutput{}, err
	}

	heads := report.AttentionHeads
	if args.Focus != "" {
		var filtered []attention.Head
		for _, h := range heads {
			if h.Focus == args.Focus {
				filtered = append(filtered, h)
			}
		}
		if len(filtered) == 0 {
			return nil, AttentionOutput{}, fmt.Errorf("unknown focus area: %s", args.Focus)
		}
		heads = filtered
	}

	return nil, AttentionOutput{
		RunID: report.RunID,
		Heads: heads,
	}, nil
}

// reportFor fetches a stored report by ID, falling back to the latest run.
func (s *Server) reportFor(ctx context.Context, runID string) (*integrate.Report, error) {
	if runID != "" {
		return s.runs.GetReport(ctx, runID)
	}
	return s.runs.LatestReport(ctx)
}
