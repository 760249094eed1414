// Package simload loads simulation output — agents from the agent-based
// model, events from the discrete-event model, and stocks from the system
// dynamics model — into the node and edge records consumed by the
// integration pipeline.
package simload

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Agent is one agent record from the agent-based model output.
type Agent struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"` // "judge", "attorney", "investigator", ...
	Name         string        `json:"name"`
	State        string        `json:"state,omitempty"`
	Workload     int           `json:"workload,omitempty"`
	Efficiency   float64       `json:"efficiency,omitempty"`
	Interactions []Interaction `json:"interactions,omitempty"`
}

// Interaction records one pairwise agent interaction. Failed interactions
// produce weaker edges than successful ones.
type Interaction struct {
	With    string `json:"with"`
	Type    string `json:"type"`
	Outcome string `json:"outcome"` // "success" or "failure"
}

// Event is one event record from the discrete-event model output.
type Event struct {
	CaseID string  `json:"case_id"`
	Type   string  `json:"type"` // "case_filed", "hearing_scheduled", ...
	Time   float64 `json:"time"`
}

// Stock is one stock record from the system dynamics model output.
type Stock struct {
	Name    string  `json:"name"` // "filed_cases", "trial_cases", ...
	Value   float64 `json:"value"`
	Initial float64 `json:"initial"`
}

// Output is the combined simulation output document.
type Output struct {
	Agents []Agent `json:"agents"`
	Events []Event `json:"events"`
	Stocks []Stock `json:"stocks"`
}

// Record is one simulation entity in node-record form, ready for insertion
// into the unified hypergraph.
type Record struct {
	ID         string
	Kind       string // "agent", "event", "stock"
	Label      string
	Attributes map[string]interface{}
}

// EdgeRecord is a structural relation between simulation entities, derived
// from agent interactions.
type EdgeRecord struct {
	ID           string
	RelationType string
	Members      []string
	Weight       float64
}

// LoadFile reads a simulation output JSON document from path.
func LoadFile(path string) (*Output, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open simulation output: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a simulation output JSON document.
func Load(r io.Reader) (*Output, error) {
	var out Output
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode simulation output: %w", err)
	}
	return &out, nil
}

// Records converts the simulation output into node records and interaction
// edges. Node IDs follow the simulation naming scheme — agent_<id>,
// event_<type>_<case>, stock_<name> — so repeated loads of the same output
// produce stable identifiers.
func (o *Output) Records() ([]Record, []EdgeRecord) {
	var records []Record
	var edges []EdgeRecord

	for _, a := range o.Agents {
		id := AgentNodeID(a.ID)
		attrs := map[string]interface{}{
			"name": a.Name,
			"role": a.Type,
		}
		if a.State != "" {
			attrs["state"] = a.State
		}
		if a.Workload != 0 {
			attrs["workload"] = a.Workload
		}
		if a.Efficiency != 0 {
			attrs["efficiency"] = a.Efficiency
		}
		records = append(records, Record{ID: id, Kind: "agent", Label: a.Name, Attributes: attrs})
	}

	for _, e := range o.Events {
		id := EventNodeID(e.Type, e.CaseID)
		records = append(records, Record{
			ID:    id,
			Kind:  "event",
			Label: fmt.Sprintf("%s (%s)", e.Type, e.CaseID),
			Attributes: map[string]interface{}{
				"case_id":    e.CaseID,
				"time":       e.Time,
				"event_type": e.Type,
			},
		})
	}

	for _, s := range o.Stocks {
		records = append(records, Record{
			ID:    StockNodeID(s.Name),
			Kind:  "stock",
			Label: s.Name,
			Attributes: map[string]interface{}{
				"name":          s.Name,
				"value":         s.Value,
				"initial_value": s.Initial,
			},
		})
	}

	// Interaction hyperedges. Successful interactions carry full weight;
	// failed ones half. Interactions whose counterparty is not in the agent
	// roster are skipped: simulation output routinely mentions actors the
	// agent model does not track.
	roster := make(map[string]bool, len(o.Agents))
	for _, a := range o.Agents {
		roster[a.ID] = true
	}
	for _, a := range o.Agents {
		for i, in := range a.Interactions {
			if !roster[in.With] {
				continue
			}
			weight := 1.0
			if in.Outcome != "success" {
				weight = 0.5
			}
			edges = append(edges, EdgeRecord{
				ID:           fmt.Sprintf("interaction_%s_%d", a.ID, i),
				RelationType: in.Type,
				Members:      []string{AgentNodeID(a.ID), AgentNodeID(in.With)},
				Weight:       weight,
			})
		}
	}

	return records, edges
}

// AgentNodeID returns the hypergraph node ID for an agent.
func AgentNodeID(agentID string) string {
	return "agent_" + agentID
}

// EventNodeID returns the hypergraph node ID for an event occurrence.
func EventNodeID(eventType, caseID string) string {
	return fmt.Sprintf("event_%s_%s", eventType, caseID)
}

// StockNodeID returns the hypergraph node ID for a stock.
func StockNodeID(name string) string {
	return "stock_" + name
}

// SampleScenario returns a small built-in simulation output used by the demo
// command and tests: three judges, two attorneys, a filing/hearing event
// pair per case, and the three main case stocks.
func SampleScenario() *Output {
	return &Output{
		Agents: []Agent{
			{ID: "judge_1", Type: "judge", Name: "Judge 1", State: "idle", Efficiency: 0.9,
				Interactions: []Interaction{{With: "attorney_1", Type: "case_assignment", Outcome: "success"}}},
			{ID: "judge_2", Type: "judge", Name: "Judge 2", State: "working", Efficiency: 0.85},
			{ID: "judge_3", Type: "judge", Name: "Judge 3", State: "idle", Efficiency: 0.8},
			{ID: "attorney_1", Type: "attorney", Name: "Attorney 1", State: "working", Workload: 5,
				Interactions: []Interaction{{With: "attorney_2", Type: "negotiation", Outcome: "failure"}}},
			{ID: "attorney_2", Type: "attorney", Name: "Attorney 2", State: "working", Workload: 3},
		},
		Events: []Event{
			{CaseID: "case_1", Type: "case_filed", Time: 0},
			{CaseID: "case_1", Type: "hearing_scheduled", Time: 10},
			{CaseID: "case_2", Type: "case_filed", Time: 5},
			{CaseID: "case_2", Type: "ruling_issued", Time: 40},
		},
		Stocks: []Stock{
			{Name: "filed_cases", Value: 50, Initial: 50},
			{Name: "discovery_cases", Value: 30, Initial: 30},
			{Name: "trial_cases", Value: 20, Initial: 20},
		},
	}
}
