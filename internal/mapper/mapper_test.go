package mapper

import (
	"errors"
	"testing"

	"github.com/analyticase/casegraph/internal/hypergraph"
)

func buildStore(t *testing.T) *hypergraph.Store {
	t.Helper()
	s := hypergraph.NewStore()

	lex := []hypergraph.Node{
		{ID: "role_judge", Origin: hypergraph.OriginLex, Kind: "role", Label: "Judicial officer",
			Attributes: map[string]interface{}{"role": "adjudicative-entity"}},
		{ID: "proc_filing", Origin: hypergraph.OriginLex, Kind: "procedure", Label: "Case filing",
			Attributes: map[string]interface{}{"procedure": "filing_procedure"}},
		{ID: "stage_trial", Origin: hypergraph.OriginLex, Kind: "stage", Label: "Trial stage",
			Attributes: map[string]interface{}{"stage": "trial_stage"}},
	}
	ad := []hypergraph.Node{
		{ID: "agent_judge_1", Origin: hypergraph.OriginAD, Kind: "agent",
			Attributes: map[string]interface{}{"role": "judge"}},
		{ID: "agent_witness_1", Origin: hypergraph.OriginAD, Kind: "agent",
			Attributes: map[string]interface{}{"role": "witness"}}, // no table entry
		{ID: "event_case_filed_case_1", Origin: hypergraph.OriginAD, Kind: "event",
			Attributes: map[string]interface{}{"case_id": "case_1", "event_type": "case_filed"}},
		{ID: "event_appeal_filed_case_1", Origin: hypergraph.OriginAD, Kind: "event",
			Attributes: map[string]interface{}{"case_id": "case_1", "event_type": "appeal_filed"}}, // table entry, no lex node
		{ID: "stock_trial_cases", Origin: hypergraph.OriginAD, Kind: "stock",
			Attributes: map[string]interface{}{"name": "trial_cases"}},
	}

	for _, n := range append(lex, ad...) {
		if err := s.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s) error = %v", n.ID, err)
		}
	}
	return s
}

func TestMapper_MapAll(t *testing.T) {
	s := buildStore(t)
	m := New(s)

	result, err := m.MapAll()
	if err != nil {
		t.Fatalf("MapAll() error = %v", err)
	}

	// judge agent, case_filed event, and trial stock map; witness agent and
	// appeal event do not.
	if result.EdgesCreated != 3 {
		t.Errorf("EdgesCreated = %d, want 3", result.EdgesCreated)
	}
	if result.UnmappedADNodes != 2 {
		t.Errorf("UnmappedADNodes = %d, want 2", result.UnmappedADNodes)
	}

	wantUnmapped := map[string]bool{"agent_witness_1": true, "event_appeal_filed_case_1": true}
	for _, id := range result.Unmapped {
		if !wantUnmapped[id] {
			t.Errorf("unexpected unmapped node %s", id)
		}
	}

	byRelation := s.CountEdgesByRelation()
	if byRelation[RelationAgentToLegalEntity] != 1 {
		t.Errorf("agent mapping edges = %d, want 1", byRelation[RelationAgentToLegalEntity])
	}
	if byRelation[RelationEventToProcedure] != 1 {
		t.Errorf("event mapping edges = %d, want 1", byRelation[RelationEventToProcedure])
	}
	if byRelation[RelationStockToStage] != 1 {
		t.Errorf("stock mapping edges = %d, want 1", byRelation[RelationStockToStage])
	}
}

func TestMapper_MapAll_Empty(t *testing.T) {
	s := hypergraph.NewStore()
	result, err := New(s).MapAll()
	if err != nil {
		t.Fatalf("MapAll() error = %v", err)
	}
	if result.EdgesCreated != 0 || result.UnmappedADNodes != 0 {
		t.Errorf("MapAll() on empty store = %+v", result)
	}
}

func TestMapper_Deterministic(t *testing.T) {
	// Two Lex nodes carry the same tag; the lexically smaller ID must win,
	// on every run.
	s := hypergraph.NewStore()
	s.AddNode(hypergraph.Node{ID: "role_b", Origin: hypergraph.OriginLex, Kind: "role",
		Attributes: map[string]interface{}{"role": "adjudicative-entity"}})
	s.AddNode(hypergraph.Node{ID: "role_a", Origin: hypergraph.OriginLex, Kind: "role",
		Attributes: map[string]interface{}{"role": "adjudicative-entity"}})
	s.AddNode(hypergraph.Node{ID: "agent_j", Origin: hypergraph.OriginAD, Kind: "agent",
		Attributes: map[string]interface{}{"role": "judge"}})

	if _, err := New(s).MapAll(); err != nil {
		t.Fatalf("MapAll() error = %v", err)
	}

	target, err := ResolveLegal(s, "agent_j")
	if err != nil {
		t.Fatalf("ResolveLegal() error = %v", err)
	}
	if target != "role_a" {
		t.Errorf("ResolveLegal() = %s, want role_a", target)
	}
}

func TestResolveLegal_Unmapped(t *testing.T) {
	s := buildStore(t)
	New(s).MapAll()

	_, err := ResolveLegal(s, "agent_witness_1")
	if !errors.Is(err, hypergraph.ErrNotFound) {
		t.Errorf("ResolveLegal() error = %v, want ErrNotFound", err)
	}
}

func TestResolveSimulation(t *testing.T) {
	// Reverse mapping is one-to-many: two judges anchored to one role node.
	s := hypergraph.NewStore()
	s.AddNode(hypergraph.Node{ID: "role_judge", Origin: hypergraph.OriginLex, Kind: "role",
		Attributes: map[string]interface{}{"role": "adjudicative-entity"}})
	for _, id := range []string{"agent_j2", "agent_j1"} {
		s.AddNode(hypergraph.Node{ID: id, Origin: hypergraph.OriginAD, Kind: "agent",
			Attributes: map[string]interface{}{"role": "judge"}})
	}
	New(s).MapAll()

	got := ResolveSimulation(s, "role_judge")
	if len(got) != 2 || got[0] != "agent_j1" || got[1] != "agent_j2" {
		t.Errorf("ResolveSimulation() = %v", got)
	}
}
