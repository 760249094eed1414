// Package hypergnn computes fixed-size node embeddings over the unified
// hypergraph via multi-layer neighborhood aggregation. The scheme is a
// deterministic propagation, not a trained model: layer-0 vectors come from
// a seeded pseudo-random function of node identity, and every layer is a
// weighted average over hyperedge neighborhoods followed by a tanh squash.
// Same node set, same edge set, same seed — same vectors.
package hypergnn

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/analyticase/casegraph/internal/hypergraph"
)

// ErrInvalidConfiguration is returned for non-positive dimensions or layer
// counts, before any computation begins.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// initScale keeps layer-0 vectors small so early layers stay in the linear
// region of tanh.
const initScale = 0.1

// Config parameterizes the embedding computation.
type Config struct {
	// InputDim is the layer-0 vector length.
	InputDim int

	// HiddenDim is the output vector length. When it differs from
	// InputDim, the final layer projects through a seed-derived fixed
	// linear map.
	HiddenDim int

	// NumLayers is the number of aggregation rounds.
	NumLayers int

	// Seed drives layer-0 initialization and the projection matrix.
	Seed int64
}

// Validate checks the configuration. It is called by New, so an Engine can
// only exist with a valid configuration.
func (c Config) Validate() error {
	if c.InputDim < 1 {
		return fmt.Errorf("%w: input_dim must be >= 1, got %d", ErrInvalidConfiguration, c.InputDim)
	}
	if c.HiddenDim < 1 {
		return fmt.Errorf("%w: hidden_dim must be >= 1, got %d", ErrInvalidConfiguration, c.HiddenDim)
	}
	if c.NumLayers < 1 {
		return fmt.Errorf("%w: num_layers must be >= 1, got %d", ErrInvalidConfiguration, c.NumLayers)
	}
	return nil
}

// Engine runs the aggregation. It is stateless between calls to Embed; all
// per-run state lives in local maps.
type Engine struct {
	config Config
}

// New creates an embedding engine, failing fast on invalid configuration.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{config: cfg}, nil
}

// Embed computes an embedding for every node in the store, assigns it via
// SetEmbedding, and returns the vectors keyed by node ID. The store is read
// through NodeIDs and Neighbors only, so a frozen store is sufficient.
func (e *Engine) Embed(s *hypergraph.Store) (map[string][]float64, error) {
	ids := s.NodeIDs()

	// Layer 0: seeded per-node initialization.
	vectors := make(map[string][]float64, len(ids))
	isolated := make(map[string]bool, len(ids))
	neighborhoods := make(map[string][]hypergraph.Neighbor, len(ids))

	for _, id := range ids {
		node, err := s.GetNode(id)
		if err != nil {
			return nil, fmt.Errorf("embed: %w", err)
		}
		vectors[id] = e.initialVector(id, node.Kind)

		neighbors, err := s.Neighbors(id)
		if err != nil {
			return nil, fmt.Errorf("embed: %w", err)
		}
		neighborhoods[id] = neighbors
		isolated[id] = len(neighbors) == 0
	}

	// Aggregation rounds. Updates are synchronous: every layer reads the
	// previous layer's vectors and writes into a fresh map.
	for layer := 0; layer < e.config.NumLayers; layer++ {
		next := make(map[string][]float64, len(ids))
		for _, id := range ids {
			if isolated[id] {
				// Isolated nodes keep their layer-0 vector untouched.
				next[id] = vectors[id]
				continue
			}
			next[id] = aggregate(vectors[id], neighborhoods[id], vectors)
		}
		vectors = next
	}

	// Optional projection to the hidden dimension.
	if e.config.HiddenDim != e.config.InputDim {
		proj := e.projectionMatrix()
		for _, id := range ids {
			vectors[id] = project(proj, vectors[id])
		}
	}

	for _, id := range ids {
		if err := s.SetEmbedding(id, vectors[id]); err != nil {
			return nil, fmt.Errorf("embed: %w", err)
		}
	}
	return vectors, nil
}

// aggregate computes the weighted average of the node's own vector (weight
// 1.0) and each neighbor's vector, then squashes component-wise with tanh.
func aggregate(self []float64, neighbors []hypergraph.Neighbor, vectors map[string][]float64) []float64 {
	dim := len(self)
	sum := make([]float64, dim)
	for i, v := range self {
		sum[i] = v
	}
	totalWeight := 1.0

	for _, n := range neighbors {
		vec := vectors[n.ID]
		for i := range sum {
			sum[i] += n.Weight * vec[i]
		}
		totalWeight += n.Weight
	}

	for i := range sum {
		sum[i] = math.Tanh(sum[i] / totalWeight)
	}
	return sum
}

// initialVector derives the layer-0 vector for a node from the engine seed
// and the node's identity. fnv64a of seed|id|kind seeds a PRNG, so identical
// inputs reproduce identical vectors across runs and processes.
func (e *Engine) initialVector(id, kind string) []float64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%s", e.config.Seed, id, kind)
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float64, e.config.InputDim)
	for i := range vec {
		vec[i] = rng.NormFloat64() * initScale
	}
	return vec
}

// projectionMatrix derives the fixed HiddenDim x InputDim linear map from
// the seed. Entries are scaled by 1/sqrt(InputDim) so projected magnitudes
// stay comparable to the input.
func (e *Engine) projectionMatrix() [][]float64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|projection", e.config.Seed)
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	scale := 1.0 / math.Sqrt(float64(e.config.InputDim))
	matrix := make([][]float64, e.config.HiddenDim)
	for i := range matrix {
		row := make([]float64, e.config.InputDim)
		for j := range row {
			row[j] = rng.NormFloat64() * scale
		}
		matrix[i] = row
	}
	return matrix
}

func project(matrix [][]float64, vec []float64) []float64 {
	out := make([]float64, len(matrix))
	for i, row := range matrix {
		var sum float64
		for j, w := range row {
			sum += w * vec[j]
		}
		out[i] = math.Tanh(sum)
	}
	return out
}
