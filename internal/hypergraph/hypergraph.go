// Package hypergraph provides the typed node and hyperedge container that
// holds both sides of an integration run: legal-framework entities (origin
// "lex") and simulation entities (origin "ad"). The store is built once per
// run, frozen, and then read concurrently by the analysis stages.
package hypergraph

import "errors"

// Sentinel errors for store operations. Callers match with errors.Is.
var (
	// ErrDuplicateNode is returned when a node ID is inserted twice.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrDanglingReference is returned when a hyperedge names a node that
	// is not in the store.
	ErrDanglingReference = errors.New("hyperedge references unknown node")

	// ErrNotFound is returned when a queried node does not exist.
	ErrNotFound = errors.New("node not found")

	// ErrFrozen is returned when a write is attempted after Freeze.
	ErrFrozen = errors.New("store is frozen")
)

// Origin identifies which source system produced a node.
type Origin string

const (
	// OriginLex marks nodes loaded from the legal framework.
	OriginLex Origin = "lex"

	// OriginAD marks nodes produced by the agent-based, discrete-event,
	// and system-dynamics simulations.
	OriginAD Origin = "ad"
)

// Node is the atomic entity in the unified hypergraph.
type Node struct {
	ID         string                 `json:"id"`
	Origin     Origin                 `json:"origin"`
	Kind       string                 `json:"kind"` // "statute", "case", "agent", "event", "stock", ...
	Label      string                 `json:"label"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`

	// Embedding is nil until the embedding engine runs. It is always
	// overwritten as a whole, never updated in place.
	Embedding []float64 `json:"embedding,omitempty"`
}

// Hyperedge is a relation connecting one or more nodes. Structural edges
// (citations, party relations) and cross-domain mapping edges share the
// same shape and are distinguished by RelationType.
type Hyperedge struct {
	ID           string   `json:"id"`
	RelationType string   `json:"relation_type"`
	Members      []string `json:"member_node_ids"`

	// Weight and Confidence are in [0, 1]. The zero value is interpreted
	// as the default of 1.0 at insertion.
	Weight     float64 `json:"weight"`
	Confidence float64 `json:"confidence"`
}

// Neighbor pairs a co-member node ID with its aggregation coefficient:
// the sum of the weights of every hyperedge the pair shares, capped at 1.0.
type Neighbor struct {
	ID     string
	Weight float64
}
