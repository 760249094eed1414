// Package attention assigns named focus areas across the node population.
// Each focus area scores every node with a fixed kind/keyword rule; a node
// can be relevant to several areas at once. The output is a report
// structure only and never alters the graph.
package attention

import (
	"sort"
	"strings"

	"github.com/analyticase/casegraph/internal/hypergraph"
)

// maxNodesPerHead bounds the per-area node list in the report.
const maxNodesPerHead = 10

// focusNames is the fixed ordered set of focus areas.
var focusNames = []string{
	"legal_entities",
	"temporal_events",
	"legal_framework",
	"case_relationships",
	"evidence_chain",
	"procedural_flow",
	"precedent_links",
	"multi_party",
}

// kindScores gives the base relevance per node kind for each focus area.
var kindScores = map[string]map[string]float64{
	"legal_entities": {
		"agent": 1.0, "role": 1.0, "party": 1.0, "court": 0.8, "judge": 1.0,
	},
	"temporal_events": {
		"event": 1.0, "stock": 0.8,
	},
	"legal_framework": {
		"statute": 1.0, "section": 1.0, "procedure": 0.8, "stage": 0.6, "concept": 0.5,
	},
	"evidence_chain": {
		"evidence": 1.0,
	},
	"procedural_flow": {
		"procedure": 1.0, "event": 0.8, "stage": 0.8,
	},
	"precedent_links": {
		"case": 1.0, "precedent": 1.0, "principle": 0.8,
	},
}

// keywordScores adds relevance when a keyword appears in a node's ID, label,
// or role attribute. Applied on top of kind scores, capped at 1.0.
var keywordScores = map[string]map[string]float64{
	"legal_entities":  {"judge": 0.5, "attorney": 0.5, "party": 0.5},
	"evidence_chain":  {"evidence": 0.8, "investigator": 0.6, "witness": 0.4},
	"precedent_links": {"precedent": 0.5},
}

// NodeScore pairs a node with its relevance to one focus area.
type NodeScore struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Head is one focus area and the nodes most associated with it.
type Head struct {
	Focus string      `json:"focus"`
	Nodes []NodeScore `json:"nodes"`
}

// Map scores every node against numHeads focus areas and reports the top
// matches per area. numHeads is capped at the fixed focus set size; values
// below one fall back to the full set.
func Map(s *hypergraph.Store, numHeads int) []Head {
	if numHeads < 1 || numHeads > len(focusNames) {
		numHeads = len(focusNames)
	}

	ids := s.NodeIDs()
	heads := make([]Head, 0, numHeads)

	for _, focus := range focusNames[:numHeads] {
		var scored []NodeScore
		for _, id := range ids {
			node, err := s.GetNode(id)
			if err != nil {
				continue
			}
			score := scoreNode(s, focus, node)
			if score > 0 {
				scored = append(scored, NodeScore{ID: id, Score: score})
			}
		}

		sort.Slice(scored, func(i, j int) bool {
			if scored[i].Score != scored[j].Score {
				return scored[i].Score > scored[j].Score
			}
			return scored[i].ID < scored[j].ID
		})
		if len(scored) > maxNodesPerHead {
			scored = scored[:maxNodesPerHead]
		}

		heads = append(heads, Head{Focus: focus, Nodes: scored})
	}
	return heads
}

// scoreNode computes a node's relevance to one focus area. Structural areas
// (case_relationships, multi_party) score by connectivity; the rest by kind
// and keyword membership.
func scoreNode(s *hypergraph.Store, focus string, node hypergraph.Node) float64 {
	switch focus {
	case "case_relationships":
		// Heavily connected nodes carry the relationship structure.
		return capUnit(float64(s.Degree(node.ID)) / 5.0)
	case "multi_party":
		return capUnit(float64(multiMemberDegree(s, node.ID)) / 3.0)
	}

	score := kindScores[focus][node.Kind]

	haystack := strings.ToLower(node.ID + " " + node.Label)
	if role, ok := node.Attributes["role"].(string); ok {
		haystack += " " + strings.ToLower(role)
	}
	for keyword, bonus := range keywordScores[focus] {
		if strings.Contains(haystack, keyword) {
			score += bonus
		}
	}

	return capUnit(score)
}

// multiMemberDegree counts the hyperedges with three or more members that
// contain the node.
func multiMemberDegree(s *hypergraph.Store, nodeID string) int {
	count := 0
	for _, e := range s.Hyperedges() {
		if len(e.Members) < 3 {
			continue
		}
		for _, m := range e.Members {
			if m == nodeID {
				count++
				break
			}
		}
	}
	return count
}

func capUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	return x
}
