// Package integrate orchestrates one integration run: build the unified
// hypergraph from the adapter outputs, create cross-domain mappings, compute
// embeddings, and fan out the three analysis stages. Construction is
// strictly sequential (nodes, structural edges, mapping edges); the analyses
// run concurrently over the frozen store since they only read.
package integrate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/analyticase/casegraph/internal/attention"
	"github.com/analyticase/casegraph/internal/community"
	"github.com/analyticase/casegraph/internal/hypergnn"
	"github.com/analyticase/casegraph/internal/hypergraph"
	"github.com/analyticase/casegraph/internal/lexload"
	"github.com/analyticase/casegraph/internal/linkpred"
	"github.com/analyticase/casegraph/internal/logging"
	"github.com/analyticase/casegraph/internal/mapper"
	"github.com/analyticase/casegraph/internal/simload"
)

// Config holds every tunable of an integration run.
type Config struct {
	InputDim            int     `json:"input_dim" yaml:"input_dim"`
	HiddenDim           int     `json:"hidden_dim" yaml:"hidden_dim"`
	NumLayers           int     `json:"num_layers" yaml:"num_layers"`
	NumAttentionHeads   int     `json:"num_attention_heads" yaml:"num_attention_heads"`
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`
	TopKLinks           int     `json:"top_k_links" yaml:"top_k_links"`
	Seed                int64   `json:"seed" yaml:"seed"`
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return Config{
		InputDim:            64,
		HiddenDim:           32,
		NumLayers:           2,
		NumAttentionHeads:   8,
		SimilarityThreshold: 0.85,
		TopKLinks:           linkpred.DefaultTopK,
		Seed:                42,
	}
}

// Validate surfaces configuration errors before any computation begins.
func (c Config) Validate() error {
	if err := (hypergnn.Config{InputDim: c.InputDim, HiddenDim: c.HiddenDim, NumLayers: c.NumLayers, Seed: c.Seed}).Validate(); err != nil {
		return err
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity_threshold must be in [0, 1], got %v",
			hypergnn.ErrInvalidConfiguration, c.SimilarityThreshold)
	}
	return nil
}

// Report is the serializable result of one integration run. It carries no
// behavior; persistence and rendering are the caller's concern.
type Report struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Config    Config    `json:"config"`

	LexNodes int `json:"lex_nodes"`
	ADNodes  int `json:"ad_nodes"`
	LexEdges int `json:"lex_edges"`
	ADEdges  int `json:"ad_edges"`

	MappingEdges    int      `json:"mapping_edges"`
	UnmappedADNodes int      `json:"unmapped_ad_nodes"`
	Unmapped        []string `json:"unmapped,omitempty"`

	EmbeddingDim int `json:"embedding_dim"`

	Communities          int                  `json:"communities"`
	CommunityAssignments map[string]int       `json:"community_assignments"`
	LinkCandidates       []linkpred.Candidate `json:"link_candidates"`
	AttentionHeads       []attention.Head     `json:"attention_heads"`
}

// Runner executes integration runs. The logger may be nil.
type Runner struct {
	config Config
	logger *slog.Logger
	trace  *logging.TraceLogger
}

// NewRunner creates a runner, failing fast on invalid configuration.
func NewRunner(cfg Config, logger *slog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{config: cfg, logger: logger}, nil
}

// SetTrace attaches a pipeline trace logger. Each phase of a run emits one
// stage event. A nil trace disables tracing.
func (r *Runner) SetTrace(trace *logging.TraceLogger) {
	r.trace = trace
}

// Run executes the full pipeline over the adapter outputs. Fatal errors
// (duplicate node, dangling reference) abort the run with no partial report;
// unmapped AD nodes are counted into the report instead.
//
// The returned store is frozen and safe for concurrent readers; callers use
// it for rendering and ad-hoc queries against the same run.
func (r *Runner) Run(
	ctx context.Context,
	lexNodes []lexload.Record,
	lexEdges []lexload.EdgeRecord,
	adNodes []simload.Record,
	adEdges []simload.EdgeRecord,
) (*Report, *hypergraph.Store, error) {
	store := hypergraph.NewStore()
	phase := time.Now()

	// Phase 1: nodes, legal before simulation.
	for _, rec := range lexNodes {
		node := hypergraph.Node{
			ID: rec.ID, Origin: hypergraph.OriginLex, Kind: rec.Kind,
			Label: rec.Label, Attributes: rec.Attributes,
		}
		if err := store.AddNode(node); err != nil {
			return nil, nil, fmt.Errorf("integrate: %w", err)
		}
	}
	for _, rec := range adNodes {
		node := hypergraph.Node{
			ID: rec.ID, Origin: hypergraph.OriginAD, Kind: rec.Kind,
			Label: rec.Label, Attributes: rec.Attributes,
		}
		if err := store.AddNode(node); err != nil {
			return nil, nil, fmt.Errorf("integrate: %w", err)
		}
	}

	// Phase 2: structural edges.
	for _, rec := range lexEdges {
		edge := hypergraph.Hyperedge{
			ID: rec.ID, RelationType: rec.RelationType, Members: rec.Members, Weight: rec.Weight,
		}
		if err := store.AddHyperedge(edge); err != nil {
			return nil, nil, fmt.Errorf("integrate: %w", err)
		}
	}
	for _, rec := range adEdges {
		edge := hypergraph.Hyperedge{
			ID: rec.ID, RelationType: rec.RelationType, Members: rec.Members, Weight: rec.Weight,
		}
		if err := store.AddHyperedge(edge); err != nil {
			return nil, nil, fmt.Errorf("integrate: %w", err)
		}
	}

	r.logger.Info("graph built",
		"lex_nodes", len(lexNodes), "ad_nodes", len(adNodes),
		"structural_edges", store.EdgeCount())
	r.trace.Stage("build", time.Since(phase), map[string]any{
		"lex_nodes": len(lexNodes), "ad_nodes": len(adNodes),
		"structural_edges": store.EdgeCount(),
	})

	// Phase 3: cross-domain mapping.
	phase = time.Now()
	mapResult, err := mapper.New(store).MapAll()
	if err != nil {
		return nil, nil, fmt.Errorf("integrate: %w", err)
	}
	store.Freeze()

	r.logger.Info("mapping complete",
		"edges_created", mapResult.EdgesCreated, "unmapped", mapResult.UnmappedADNodes)
	r.trace.Stage("map", time.Since(phase), map[string]any{
		"mapping_edges": mapResult.EdgesCreated, "unmapped": mapResult.UnmappedADNodes,
	})

	// Phase 4: embeddings.
	phase = time.Now()
	engine, err := hypergnn.New(hypergnn.Config{
		InputDim:  r.config.InputDim,
		HiddenDim: r.config.HiddenDim,
		NumLayers: r.config.NumLayers,
		Seed:      r.config.Seed,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("integrate: %w", err)
	}
	if _, err := engine.Embed(store); err != nil {
		return nil, nil, fmt.Errorf("integrate: %w", err)
	}

	r.logger.Info("embeddings computed", "nodes", store.NodeCount(), "dim", r.config.HiddenDim)
	r.trace.Stage("embed", time.Since(phase), map[string]any{
		"nodes": store.NodeCount(), "dim": r.config.HiddenDim,
	})

	// Phase 5: the three analyses are independent of each other and only
	// read the frozen store, so they fan out.
	var (
		communities *community.Result
		candidates  []linkpred.Candidate
		heads       []attention.Head
	)

	phase = time.Now()
	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		communities, err = community.Detect(store, r.config.SimilarityThreshold)
		return err
	})
	eg.Go(func() error {
		var err error
		candidates, err = linkpred.Predict(store, r.config.TopKLinks)
		return err
	})
	eg.Go(func() error {
		heads = attention.Map(store, r.config.NumAttentionHeads)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, fmt.Errorf("integrate: %w", err)
	}

	r.logger.Info("analysis complete",
		"communities", communities.Count, "link_candidates", len(candidates))
	r.trace.Stage("analyze", time.Since(phase), map[string]any{
		"communities": communities.Count, "link_candidates": len(candidates),
		"attention_heads": len(heads),
	})

	report := &Report{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Config:    r.config,

		LexNodes: store.CountByOrigin(hypergraph.OriginLex),
		ADNodes:  store.CountByOrigin(hypergraph.OriginAD),
		LexEdges: len(lexEdges),
		ADEdges:  len(adEdges),

		MappingEdges:    mapResult.EdgesCreated,
		UnmappedADNodes: mapResult.UnmappedADNodes,
		Unmapped:        mapResult.Unmapped,

		EmbeddingDim: r.config.HiddenDim,

		Communities:          communities.Count,
		CommunityAssignments: communities.Assignments,
		LinkCandidates:       candidates,
		AttentionHeads:       heads,
	}
	return report, store, nil
}
