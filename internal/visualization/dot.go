// Package visualization renders the unified hypergraph in various output formats.
package visualization

import (
	"fmt"
	"strings"

	"github.com/analyticase/casegraph/internal/hypergraph"
	"github.com/analyticase/casegraph/internal/mapper"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// communityPalette cycles over community labels.
var communityPalette = []string{
	"steelblue",
	"mediumseagreen",
	"goldenrod",
	"tomato",
	"mediumpurple",
	"darkturquoise",
	"salmon",
	"olivedrab",
}

// originShapes distinguishes the two source graphs.
var originShapes = map[hypergraph.Origin]string{
	hypergraph.OriginLex: "box",
	hypergraph.OriginAD:  "ellipse",
}

// RenderDOT produces a Graphviz DOT representation of the hypergraph.
// Nodes are colored by community label when communities is non-nil, and by
// origin otherwise. Hyperedges with more than two members are rendered
// through a point-shaped connector node.
func RenderDOT(store *hypergraph.Store, communities map[string]int) (string, error) {
	var b strings.Builder
	b.WriteString("graph casegraph {\n")
	b.WriteString("  layout=neato;\n")
	b.WriteString("  overlap=false;\n")
	b.WriteString("  node [style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, id := range store.NodeIDs() {
		node, err := store.GetNode(id)
		if err != nil {
			return "", fmt.Errorf("get node %s: %w", id, err)
		}

		color := nodeColor(node, communities)
		shape := originShapes[node.Origin]
		if shape == "" {
			shape = "ellipse"
		}

		label := node.Label
		if label == "" {
			label = node.ID
		}
		b.WriteString(fmt.Sprintf("  %q [label=%q, shape=%s, fillcolor=%q, tooltip=\"kind=%s origin=%s\"];\n",
			node.ID, truncate(label, 40), shape, color, node.Kind, node.Origin))
	}
	b.WriteString("\n")

	for _, edge := range store.Hyperedges() {
		style := "solid"
		if mapper.IsMappingRelation(edge.RelationType) {
			style = "bold"
		}

		if len(edge.Members) == 2 {
			b.WriteString(fmt.Sprintf("  %q -- %q [label=%q, style=%s, weight=\"%.1f\"];\n",
				edge.Members[0], edge.Members[1], edge.RelationType, style, edge.Weight))
			continue
		}

		// Connector node for hyperedges that are not simple pairs.
		connector := "he_" + edge.ID
		b.WriteString(fmt.Sprintf("  %q [shape=point, label=\"\", tooltip=%q];\n",
			connector, edge.RelationType))
		for _, member := range edge.Members {
			b.WriteString(fmt.Sprintf("  %q -- %q [style=%s, weight=\"%.1f\"];\n",
				connector, member, style, edge.Weight))
		}
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// RenderJSON produces a JSON graph representation with nodes and edges arrays.
func RenderJSON(store *hypergraph.Store, communities map[string]int) (map[string]interface{}, error) {
	jsonNodes := make([]map[string]interface{}, 0, store.NodeCount())
	for _, id := range store.NodeIDs() {
		node, err := store.GetNode(id)
		if err != nil {
			return nil, fmt.Errorf("get node %s: %w", id, err)
		}

		entry := map[string]interface{}{
			"id":     node.ID,
			"label":  node.Label,
			"kind":   node.Kind,
			"origin": string(node.Origin),
			"degree": store.Degree(node.ID),
		}
		if communities != nil {
			if label, ok := communities[node.ID]; ok {
				entry["community"] = label
			}
		}
		jsonNodes = append(jsonNodes, entry)
	}

	edges := store.Hyperedges()
	jsonEdges := make([]map[string]interface{}, 0, len(edges))
	for _, edge := range edges {
		jsonEdges = append(jsonEdges, map[string]interface{}{
			"id":            edge.ID,
			"relation_type": edge.RelationType,
			"members":       edge.Members,
			"weight":        edge.Weight,
			"confidence":    edge.Confidence,
		})
	}

	return map[string]interface{}{
		"nodes":      jsonNodes,
		"edges":      jsonEdges,
		"node_count": len(jsonNodes),
		"edge_count": len(jsonEdges),
	}, nil
}

func nodeColor(node hypergraph.Node, communities map[string]int) string {
	if communities != nil {
		if label, ok := communities[node.ID]; ok && label >= 0 {
			return communityPalette[label%len(communityPalette)]
		}
	}
	if node.Origin == hypergraph.OriginLex {
		return "steelblue"
	}
	return "mediumseagreen"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
