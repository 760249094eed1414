// Package linkpred scores unconnected node pairs by embedding similarity
// and returns the top-K candidates for latent relationships. Candidates are
// a report artifact: the predictor never writes to the store.
package linkpred

import (
	"fmt"
	"sort"

	"github.com/analyticase/casegraph/internal/hypergraph"
	"github.com/analyticase/casegraph/internal/vecmath"
)

// DefaultTopK is the default candidate list length.
const DefaultTopK = 10

// Candidate is one scored node pair. A is always the lexically smaller ID.
type Candidate struct {
	A     string  `json:"node_a"`
	B     string  `json:"node_b"`
	Score float64 `json:"score"`
}

// Predict returns the topK highest-scoring pairs of nodes that do not share
// any hyperedge. Self-pairs are excluded. Scores are cosine similarity
// clamped to [0, 1]; ties break on ascending (A, B). topK <= 0 falls back
// to DefaultTopK.
func Predict(s *hypergraph.Store, topK int) ([]Candidate, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	ids := s.NodeIDs()
	vectors := make(map[string][]float64, len(ids))
	for _, id := range ids {
		node, err := s.GetNode(id)
		if err != nil {
			return nil, fmt.Errorf("predict links: %w", err)
		}
		if node.Embedding == nil {
			return nil, fmt.Errorf("predict links: node %q has no embedding", id)
		}
		vectors[id] = node.Embedding
	}

	var candidates []Candidate
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			if s.Connected(a, b) {
				continue
			}
			score := vecmath.ClampUnit(vecmath.CosineSimilarity(vectors[a], vectors[b]))
			candidates = append(candidates, Candidate{A: a, B: b, Score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].A != candidates[j].A {
			return candidates[i].A < candidates[j].A
		}
		return candidates[i].B < candidates[j].B
	})

	if topK > len(candidates) {
		topK = len(candidates)
	}
	return candidates[:topK], nil
}
