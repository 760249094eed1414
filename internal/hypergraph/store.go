package hypergraph

import (
	"fmt"
	"sort"
)

// Store holds the unified hypergraph for a single integration run. It is
// owned by the run's orchestrator: construction is sequential, and after
// Freeze the store only accepts embedding assignment. A frozen store is
// safe for concurrent readers.
type Store struct {
	nodes  map[string]*Node
	edges  []Hyperedge
	byNode map[string][]int // node ID -> indices into edges
	frozen bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		nodes:  make(map[string]*Node),
		byNode: make(map[string][]int),
	}
}

// AddNode inserts a node. Inserting an ID that is already present fails
// with ErrDuplicateNode rather than overwriting.
func (s *Store) AddNode(node Node) error {
	if s.frozen {
		return fmt.Errorf("add node %q: %w", node.ID, ErrFrozen)
	}
	if node.ID == "" {
		return fmt.Errorf("add node: id is required")
	}
	if node.Origin != OriginLex && node.Origin != OriginAD {
		return fmt.Errorf("add node %q: unknown origin %q", node.ID, node.Origin)
	}
	if _, exists := s.nodes[node.ID]; exists {
		return fmt.Errorf("add node %q: %w", node.ID, ErrDuplicateNode)
	}
	if err := validateAttributes(node.Kind, node.Attributes); err != nil {
		return fmt.Errorf("add node %q: %w", node.ID, err)
	}

	n := node
	s.nodes[node.ID] = &n
	return nil
}

// AddHyperedge inserts a hyperedge. Every member must reference an existing
// node; a missing member fails with ErrDanglingReference and the edge is not
// stored. Zero Weight or Confidence is replaced with the default of 1.0.
func (s *Store) AddHyperedge(edge Hyperedge) error {
	if s.frozen {
		return fmt.Errorf("add hyperedge %q: %w", edge.ID, ErrFrozen)
	}
	if edge.ID == "" {
		return fmt.Errorf("add hyperedge: id is required")
	}
	if len(edge.Members) == 0 {
		return fmt.Errorf("add hyperedge %q: at least one member is required", edge.ID)
	}
	for _, id := range edge.Members {
		if _, exists := s.nodes[id]; !exists {
			return fmt.Errorf("add hyperedge %q: member %q: %w", edge.ID, id, ErrDanglingReference)
		}
	}
	if edge.Weight == 0 {
		edge.Weight = 1.0
	}
	if edge.Confidence == 0 {
		edge.Confidence = 1.0
	}
	if edge.Weight < 0 || edge.Weight > 1 {
		return fmt.Errorf("add hyperedge %q: weight must be in [0, 1], got %v", edge.ID, edge.Weight)
	}
	if edge.Confidence < 0 || edge.Confidence > 1 {
		return fmt.Errorf("add hyperedge %q: confidence must be in [0, 1], got %v", edge.ID, edge.Confidence)
	}

	idx := len(s.edges)
	s.edges = append(s.edges, edge)
	for _, id := range edge.Members {
		s.byNode[id] = append(s.byNode[id], idx)
	}
	return nil
}

// Freeze marks the end of the build phase. Subsequent AddNode and
// AddHyperedge calls fail with ErrFrozen; SetEmbedding remains allowed.
func (s *Store) Freeze() {
	s.frozen = true
}

// GetNode returns a copy of the node with the given ID, or ErrNotFound.
func (s *Store) GetNode(id string) (Node, error) {
	n, exists := s.nodes[id]
	if !exists {
		return Node{}, fmt.Errorf("get node %q: %w", id, ErrNotFound)
	}
	return *n, nil
}

// HasNode reports whether a node with the given ID exists.
func (s *Store) HasNode(id string) bool {
	_, exists := s.nodes[id]
	return exists
}

// SetEmbedding replaces the embedding vector of a node. This is the only
// mutation permitted on a frozen store.
func (s *Store) SetEmbedding(id string, embedding []float64) error {
	n, exists := s.nodes[id]
	if !exists {
		return fmt.Errorf("set embedding for %q: %w", id, ErrNotFound)
	}
	vec := make([]float64, len(embedding))
	copy(vec, embedding)
	n.Embedding = vec
	return nil
}

// NodeIDs returns all node IDs in ascending lexical order. Every stage that
// iterates the node set goes through this method so iteration order never
// depends on map ordering.
func (s *Store) NodeIDs() []string {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Hyperedges returns a copy of all hyperedges in insertion order.
func (s *Store) Hyperedges() []Hyperedge {
	out := make([]Hyperedge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Neighbors returns every other node that co-occurs with nodeID in any
// hyperedge, deduplicated and sorted by ID. When a pair shares several
// hyperedges, the weights are summed and capped at 1.0 so the result can be
// used directly as an aggregation coefficient.
func (s *Store) Neighbors(nodeID string) ([]Neighbor, error) {
	if _, exists := s.nodes[nodeID]; !exists {
		return nil, fmt.Errorf("neighbors of %q: %w", nodeID, ErrNotFound)
	}

	summed := make(map[string]float64)
	for _, idx := range s.byNode[nodeID] {
		edge := s.edges[idx]
		for _, member := range edge.Members {
			if member == nodeID {
				continue
			}
			summed[member] += edge.Weight
		}
	}

	out := make([]Neighbor, 0, len(summed))
	for id, w := range summed {
		if w > 1.0 {
			w = 1.0
		}
		out = append(out, Neighbor{ID: id, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Connected reports whether two nodes share at least one hyperedge.
func (s *Store) Connected(a, b string) bool {
	for _, idx := range s.byNode[a] {
		for _, member := range s.edges[idx].Members {
			if member == b {
				return true
			}
		}
	}
	return false
}

// Degree returns the number of hyperedges the node is a member of.
func (s *Store) Degree(nodeID string) int {
	return len(s.byNode[nodeID])
}

// NodeCount returns the total number of nodes.
func (s *Store) NodeCount() int {
	return len(s.nodes)
}

// EdgeCount returns the total number of hyperedges.
func (s *Store) EdgeCount() int {
	return len(s.edges)
}

// CountByOrigin returns the number of nodes with the given origin.
func (s *Store) CountByOrigin(origin Origin) int {
	count := 0
	for _, n := range s.nodes {
		if n.Origin == origin {
			count++
		}
	}
	return count
}

// CountEdgesByRelation returns the number of hyperedges per relation type.
func (s *Store) CountEdgesByRelation() map[string]int {
	counts := make(map[string]int)
	for _, e := range s.edges {
		counts[e.RelationType]++
	}
	return counts
}
