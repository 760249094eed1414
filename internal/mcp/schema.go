// Package mcp provides an MCP (Model Context Protocol) server for casegraph.
package mcp

import (
	"time"

	"github.com/analyticase/casegraph/internal/attention"
	"github.com/analyticase/casegraph/internal/linkpred"
)

// IntegrateInput defines the input for the casegraph_integrate tool.
type IntegrateInput struct {
	LexDir  string `json:"lex_dir,omitempty" jsonschema:"Directory of legal framework YAML files (overrides configured default)"`
	SimFile string `json:"sim_file,omitempty" jsonschema:"Simulation output JSON file (overrides configured default; empty uses the built-in sample)"`
	Seed    *int64 `json:"seed,omitempty" jsonschema:"Embedding seed override for this run"`
}

// IntegrateOutput defines the output for the casegraph_integrate tool.
type IntegrateOutput struct {
	RunID           string   `json:"run_id" jsonschema:"ID of the recorded run"`
	LexNodes        int      `json:"lex_nodes" jsonschema:"Number of legal nodes"`
	ADNodes         int      `json:"ad_nodes" jsonschema:"Number of simulation nodes"`
	MappingEdges    int      `json:"mapping_edges" jsonschema:"Number of cross-domain mapping edges created"`
	UnmappedADNodes int      `json:"unmapped_ad_nodes" jsonschema:"Number of simulation nodes with no legal counterpart"`
	Unmapped        []string `json:"unmapped,omitempty" jsonschema:"IDs of unmapped simulation nodes"`
	Communities     int      `json:"communities" jsonschema:"Number of detected communities"`
	LinkCandidates  int      `json:"link_candidates" jsonschema:"Number of predicted link candidates"`
	Message         string   `json:"message" jsonschema:"Human-readable result message"`
}

// ReportInput defines the input for the casegraph_report tool.
type ReportInput struct {
	RunID string `json:"run_id,omitempty" jsonschema:"Run ID to fetch (default: latest run)"`
}

// ReportOutput defines the output for the casegraph_report tool.
type ReportOutput struct {
	Report map[string]interface{} `json:"report" jsonschema:"Full integration report"`
}

// LinksInput defines the input for the casegraph_links tool.
type LinksInput struct {
	RunID string `json:"run_id,omitempty" jsonschema:"Run ID to fetch (default: latest run)"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"Maximum candidates to return (default: all stored)"`
}

// LinksOutput defines the output for the casegraph_links tool.
type LinksOutput struct {
	RunID      string               `json:"run_id"`
	Candidates []linkpred.Candidate `json:"candidates" jsonschema:"Predicted links ranked by cosine similarity"`
	Count      int                  `json:"count" jsonschema:"Number of candidates returned"`
}

// CommunitiesInput defines the input for the casegraph_communities tool.
type CommunitiesInput struct {
	RunID string `json:"run_id,omitempty" jsonschema:"Run ID to fetch (default: latest run)"`
}

// CommunitiesOutput defines the output for the casegraph_communities tool.
type CommunitiesOutput struct {
	RunID       string              `json:"run_id"`
	Communities int                 `json:"communities" jsonschema:"Number of communities"`
	Members     map[string][]string `json:"members" jsonschema:"Node IDs grouped by community label"`
}

// AttentionInput defines the input for the casegraph_attention tool.
type AttentionInput struct {
	RunID string `json:"run_id,omitempty" jsonschema:"Run ID to fetch (default: latest run)"`
	Focus string `json:"focus,omitempty" jsonschema:"Restrict output to one focus area (e.g. 'legal_entities')"`
}

// AttentionOutput defines the output for the casegraph_attention tool.
type AttentionOutput struct {
	RunID string           `json:"run_id"`
	Heads []attention.Head `json:"heads" jsonschema:"Attention heads with their top nodes"`
}

// RunListItem provides a list view of a stored run.
type RunListItem struct {
	RunID        string    `json:"run_id"`
	CreatedAt    time.Time `json:"created_at"`
	Seed         int64     `json:"seed"`
	MappingEdges int       `json:"mapping_edges"`
	Communities  int       `json:"communities"`
}
