package community

import (
	"testing"

	"github.com/analyticase/casegraph/internal/hypergraph"
)

// storeWithEmbeddings builds a store whose nodes carry fixed embeddings.
func storeWithEmbeddings(t *testing.T, embeddings map[string][]float64) *hypergraph.Store {
	t.Helper()
	s := hypergraph.NewStore()
	for id := range embeddings {
		if err := s.AddNode(hypergraph.Node{ID: id, Origin: hypergraph.OriginAD, Kind: "agent"}); err != nil {
			t.Fatalf("AddNode(%s) error = %v", id, err)
		}
	}
	s.Freeze()
	for id, vec := range embeddings {
		if err := s.SetEmbedding(id, vec); err != nil {
			t.Fatalf("SetEmbedding(%s) error = %v", id, err)
		}
	}
	return s
}

func TestDetect_TwoClusters(t *testing.T) {
	// a and b point the same way, c and d the opposite way.
	s := storeWithEmbeddings(t, map[string][]float64{
		"a": {1, 0.1},
		"b": {1, 0.05},
		"c": {-1, 0.1},
		"d": {-1, 0.02},
	})

	result, err := Detect(s, 0.9)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if result.Count != 2 {
		t.Fatalf("Count = %d, want 2 (assignments %v)", result.Count, result.Assignments)
	}
	if result.Assignments["a"] != result.Assignments["b"] {
		t.Errorf("a and b split: %v", result.Assignments)
	}
	if result.Assignments["c"] != result.Assignments["d"] {
		t.Errorf("c and d split: %v", result.Assignments)
	}
	if result.Assignments["a"] == result.Assignments["c"] {
		t.Errorf("a and c merged: %v", result.Assignments)
	}

	// Labels are numbered by first appearance in sorted ID order, so "a"
	// always gets community 0.
	if result.Assignments["a"] != 0 {
		t.Errorf("Assignments[a] = %d, want 0", result.Assignments["a"])
	}
}

func TestDetect_AllSingletons(t *testing.T) {
	// Orthogonal embeddings and an exact-match threshold: every node ends
	// up alone. Valid, not an error.
	s := storeWithEmbeddings(t, map[string][]float64{
		"a": {1, 0, 0},
		"b": {0, 1, 0},
		"c": {0, 0, 1},
	})

	result, err := Detect(s, 1.0)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if result.Count != 3 {
		t.Errorf("Count = %d, want 3", result.Count)
	}
}

func TestDetect_Totality(t *testing.T) {
	embeddings := map[string][]float64{
		"a": {1, 0}, "b": {0.9, 0.1}, "c": {0, 1}, "d": {-1, 0}, "e": {0.5, 0.5},
	}
	s := storeWithEmbeddings(t, embeddings)

	result, err := Detect(s, 0.8)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	// Every node appears exactly once and labels are dense.
	if len(result.Assignments) != len(embeddings) {
		t.Fatalf("assignments cover %d nodes, want %d", len(result.Assignments), len(embeddings))
	}
	seen := make(map[int]bool)
	for _, label := range result.Assignments {
		if label < 0 || label >= result.Count {
			t.Errorf("label %d outside [0, %d)", label, result.Count)
		}
		seen[label] = true
	}
	if len(seen) != result.Count {
		t.Errorf("observed %d distinct labels, Count = %d", len(seen), result.Count)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	embeddings := map[string][]float64{
		"a": {1, 0.2}, "b": {0.8, 0.3}, "c": {-0.5, 1}, "d": {0.7, 0.4},
	}

	first, err := Detect(storeWithEmbeddings(t, embeddings), 0.85)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	second, err := Detect(storeWithEmbeddings(t, embeddings), 0.85)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	for id, label := range first.Assignments {
		if second.Assignments[id] != label {
			t.Errorf("node %s label differs across runs: %d vs %d", id, label, second.Assignments[id])
		}
	}
}

func TestDetect_MissingEmbedding(t *testing.T) {
	s := hypergraph.NewStore()
	s.AddNode(hypergraph.Node{ID: "a", Origin: hypergraph.OriginAD, Kind: "agent"})

	if _, err := Detect(s, 0.5); err == nil {
		t.Fatal("Detect() expected error for missing embedding")
	}
}
