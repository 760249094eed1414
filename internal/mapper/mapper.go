// Package mapper builds the cross-domain hyperedges that tie simulation
// nodes to their legal-framework counterparts. Matching is rule-based over
// fixed correspondence tables, not similarity search: an AD node either has
// a table entry that resolves to a Lex node, or it is counted as unmapped.
package mapper

import (
	"fmt"
	"sort"

	"github.com/analyticase/casegraph/internal/hypergraph"
)

// Relation types for cross-domain mapping edges.
const (
	RelationAgentToLegalEntity = "agent_to_legal_entity"
	RelationEventToProcedure   = "event_to_procedure"
	RelationStockToStage       = "stock_to_stage"
)

// TableConfidence is the confidence assigned to table-based matches. The
// tables are exact correspondences, so this is fixed at 1.0 today; it is a
// named constant so a fuzzier matcher can lower it without touching callers.
const TableConfidence = 1.0

// agentRoleTable maps agent roles to the legal role tag they correspond to.
var agentRoleTable = map[string]string{
	"judge":        "adjudicative-entity",
	"attorney":     "representative-entity",
	"investigator": "evidentiary-entity",
}

// eventProcedureTable maps discrete-event types to legal procedure names.
var eventProcedureTable = map[string]string{
	"case_filed":        "filing_procedure",
	"hearing_scheduled": "hearing_procedure",
	"hearing_conducted": "trial_procedure",
	"ruling_issued":     "judgment_procedure",
	"appeal_filed":      "appeal_procedure",
	"case_closed":       "closure_procedure",
}

// stockStageTable maps system-dynamics stock names to legal stage names.
var stockStageTable = map[string]string{
	"filed_cases":     "filing_stage",
	"discovery_cases": "discovery_stage",
	"pre_trial_cases": "pre_trial_stage",
	"trial_cases":     "trial_stage",
	"ruling_cases":    "ruling_stage",
	"closed_cases":    "closure_stage",
}

// Result summarizes one mapping pass. Unmapped nodes are not an error —
// some AD nodes legitimately have no legal counterpart — but every skip is
// counted so callers can detect incomplete coverage.
type Result struct {
	EdgesCreated    int      `json:"edges_created"`
	UnmappedADNodes int      `json:"unmapped_ad_nodes"`
	Unmapped        []string `json:"unmapped,omitempty"`
}

// Mapper resolves AD nodes against the Lex side of a store.
type Mapper struct {
	store *hypergraph.Store

	// tag -> sorted Lex node IDs carrying that tag.
	lexByTag map[string][]string
}

// New creates a Mapper over the given store and indexes the Lex nodes by
// their role/procedure/stage tags.
func New(s *hypergraph.Store) *Mapper {
	m := &Mapper{store: s, lexByTag: make(map[string][]string)}

	for _, id := range s.NodeIDs() {
		node, err := s.GetNode(id)
		if err != nil || node.Origin != hypergraph.OriginLex {
			continue
		}
		for _, tag := range lexTags(node) {
			m.lexByTag[tag] = append(m.lexByTag[tag], id)
		}
	}
	for tag := range m.lexByTag {
		sort.Strings(m.lexByTag[tag])
	}
	return m
}

// lexTags returns the correspondence tags a Lex node can be matched by:
// its kind plus any role/procedure/stage attribute.
func lexTags(node hypergraph.Node) []string {
	tags := []string{node.Kind}
	for _, key := range []string{"role", "procedure", "stage"} {
		if v, ok := node.Attributes[key].(string); ok && v != "" {
			tags = append(tags, v)
		}
	}
	return tags
}

// MapAll creates one mapping hyperedge for every AD node whose kind/name has
// a table entry that resolves to a Lex node. AD nodes without a table entry,
// or whose table entry names a legal tag absent from the Lex side, are
// skipped and counted. The pass is deterministic: AD nodes are visited in
// ascending ID order and ties between candidate Lex nodes break to the
// lexically smallest ID.
func (m *Mapper) MapAll() (*Result, error) {
	result := &Result{}

	for _, id := range m.store.NodeIDs() {
		node, err := m.store.GetNode(id)
		if err != nil {
			return nil, fmt.Errorf("map all: %w", err)
		}
		if node.Origin != hypergraph.OriginAD {
			continue
		}

		tag, relation, ok := m.targetFor(node)
		if !ok {
			result.UnmappedADNodes++
			result.Unmapped = append(result.Unmapped, id)
			continue
		}

		candidates := m.lexByTag[tag]
		if len(candidates) == 0 {
			result.UnmappedADNodes++
			result.Unmapped = append(result.Unmapped, id)
			continue
		}

		edge := hypergraph.Hyperedge{
			ID:           "map_" + id,
			RelationType: relation,
			Members:      []string{id, candidates[0]},
			Weight:       1.0,
			Confidence:   TableConfidence,
		}
		if err := m.store.AddHyperedge(edge); err != nil {
			return nil, fmt.Errorf("map all: %w", err)
		}
		result.EdgesCreated++
	}

	return result, nil
}

// targetFor resolves an AD node to the legal tag and relation type its kind
// prescribes. ok is false when no table entry applies.
func (m *Mapper) targetFor(node hypergraph.Node) (tag, relation string, ok bool) {
	switch node.Kind {
	case "agent":
		role, _ := node.Attributes["role"].(string)
		tag, ok = agentRoleTable[role]
		return tag, RelationAgentToLegalEntity, ok
	case "event":
		eventType, _ := node.Attributes["event_type"].(string)
		tag, ok = eventProcedureTable[eventType]
		return tag, RelationEventToProcedure, ok
	case "stock":
		name, _ := node.Attributes["name"].(string)
		tag, ok = stockStageTable[name]
		return tag, RelationStockToStage, ok
	default:
		return "", "", false
	}
}

// ResolveLegal returns the Lex node an AD node maps to via the most recent
// mapping hyperedge, or ErrNotFound when the node has no legal counterpart.
func ResolveLegal(s *hypergraph.Store, adNodeID string) (string, error) {
	edges := s.Hyperedges()
	// Later edges win; mapping edges are appended after structural ones.
	for i := len(edges) - 1; i >= 0; i-- {
		e := edges[i]
		if !IsMappingRelation(e.RelationType) {
			continue
		}
		if len(e.Members) == 2 && e.Members[0] == adNodeID {
			return e.Members[1], nil
		}
	}
	return "", fmt.Errorf("resolve legal for %q: %w", adNodeID, hypergraph.ErrNotFound)
}

// ResolveSimulation returns every AD node anchored to the given Lex node.
// The reverse mapping is one-to-many.
func ResolveSimulation(s *hypergraph.Store, lexNodeID string) []string {
	var out []string
	for _, e := range s.Hyperedges() {
		if !IsMappingRelation(e.RelationType) {
			continue
		}
		if len(e.Members) == 2 && e.Members[1] == lexNodeID {
			out = append(out, e.Members[0])
		}
	}
	sort.Strings(out)
	return out
}

// IsMappingRelation reports whether a relation type is one of the
// cross-domain mapping relations.
func IsMappingRelation(relation string) bool {
	return relation == RelationAgentToLegalEntity ||
		relation == RelationEventToProcedure ||
		relation == RelationStockToStage
}
