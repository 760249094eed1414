// Package community partitions embedded nodes into disjoint communities by
// embedding-space proximity: union-find over the threshold graph of pairwise
// cosine similarity. Merge order is fixed (ascending ID pairs), so community
// numbering is reproducible run to run.
package community

import (
	"fmt"

	"github.com/analyticase/casegraph/internal/hypergraph"
	"github.com/analyticase/casegraph/internal/vecmath"
)

// Result holds one detection pass.
type Result struct {
	// Assignments maps each node ID to its community label. Labels are
	// dense non-negative integers numbered by first appearance in
	// ascending node-ID order.
	Assignments map[string]int `json:"assignments"`

	// Count is the number of distinct communities.
	Count int `json:"count"`
}

// Detect clusters every embedded node in the store. Nodes whose mutual
// cosine similarity exceeds threshold land in the same community; if no pair
// crosses the threshold every node is a singleton, which is a valid outcome.
// Nodes without embeddings are an error: the detector runs strictly after
// the embedding engine.
func Detect(s *hypergraph.Store, threshold float64) (*Result, error) {
	ids := s.NodeIDs()

	vectors := make(map[string][]float64, len(ids))
	for _, id := range ids {
		node, err := s.GetNode(id)
		if err != nil {
			return nil, fmt.Errorf("detect communities: %w", err)
		}
		if node.Embedding == nil {
			return nil, fmt.Errorf("detect communities: node %q has no embedding", id)
		}
		vectors[id] = node.Embedding
	}

	uf := newUnionFind(ids)

	// Pairs in ascending (idA, idB) order; NodeIDs is already sorted.
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			sim := vecmath.CosineSimilarity(vectors[ids[i]], vectors[ids[j]])
			if sim > threshold {
				uf.union(ids[i], ids[j])
			}
		}
	}

	// Renumber roots densely, by first appearance in sorted ID order.
	labels := make(map[string]int)
	assignments := make(map[string]int, len(ids))
	for _, id := range ids {
		root := uf.find(id)
		label, seen := labels[root]
		if !seen {
			label = len(labels)
			labels[root] = label
		}
		assignments[id] = label
	}

	return &Result{Assignments: assignments, Count: len(labels)}, nil
}

// unionFind is a string-keyed disjoint-set forest with path compression and
// union by rank.
type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

func newUnionFind(ids []string) *unionFind {
	uf := &unionFind{
		parent: make(map[string]string, len(ids)),
		rank:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
	}
	return uf
}

func (uf *unionFind) find(id string) string {
	for uf.parent[id] != id {
		uf.parent[id] = uf.parent[uf.parent[id]]
		id = uf.parent[id]
	}
	return id
}

func (uf *unionFind) union(a, b string) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}
