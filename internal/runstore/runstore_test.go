package runstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/analyticase/casegraph/internal/config"
	"github.com/analyticase/casegraph/internal/integrate"
)

func testReport(id string, created time.Time) *integrate.Report {
	return &integrate.Report{
		RunID:           id,
		CreatedAt:       created,
		Config:          integrate.DefaultConfig(),
		LexNodes:        3,
		ADNodes:         2,
		MappingEdges:    1,
		UnmappedADNodes: 1,
		Unmapped:        []string{"A2"},
		EmbeddingDim:    64,
		Communities:     4,
		CommunityAssignments: map[string]int{
			"L1": 0, "L2": 1, "L3": 2, "A1": 2, "A2": 3,
		},
	}
}

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, config.Dir, "casegraph.db")); os.IsNotExist(err) {
		t.Error("casegraph.db was not created")
	}
}

func TestRunStore_SaveGetReport(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	report := testReport("run-1", time.Now().UTC())

	if err := store.SaveReport(ctx, report); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	got, err := store.GetReport(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if got.RunID != "run-1" {
		t.Errorf("GetReport() RunID = %v, want run-1", got.RunID)
	}
	if got.MappingEdges != 1 || got.UnmappedADNodes != 1 {
		t.Errorf("round-tripped counts = (%d, %d), want (1, 1)", got.MappingEdges, got.UnmappedADNodes)
	}
	if got.CommunityAssignments["A1"] != 2 {
		t.Errorf("round-tripped assignment for A1 = %d, want 2", got.CommunityAssignments["A1"])
	}
}

func TestRunStore_SaveReportRequiresID(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	report := testReport("", time.Now().UTC())
	if err := store.SaveReport(context.Background(), report); err == nil {
		t.Error("expected error for empty run ID")
	}
}

func TestRunStore_SaveReportDuplicateID(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	report := testReport("run-1", time.Now().UTC())
	if err := store.SaveReport(ctx, report); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}
	if err := store.SaveReport(ctx, report); err == nil {
		t.Error("expected error for duplicate run ID")
	}
}

func TestRunStore_LatestReport(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		if err := store.SaveReport(ctx, testReport(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveReport(%s) error = %v", id, err)
		}
	}

	latest, err := store.LatestReport(ctx)
	if err != nil {
		t.Fatalf("LatestReport() error = %v", err)
	}
	if latest.RunID != "run-3" {
		t.Errorf("LatestReport() RunID = %v, want run-3", latest.RunID)
	}
}

func TestRunStore_LatestReportEmpty(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if _, err := store.LatestReport(context.Background()); !errors.Is(err, ErrNoRuns) {
		t.Errorf("LatestReport() error = %v, want ErrNoRuns", err)
	}
}

func TestRunStore_GetReportNotFound(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if _, err := store.GetReport(context.Background(), "missing"); !errors.Is(err, ErrNoRuns) {
		t.Errorf("GetReport() error = %v, want ErrNoRuns", err)
	}
}

func TestRunStore_ListRuns(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		if err := store.SaveReport(ctx, testReport(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveReport(%s) error = %v", id, err)
		}
	}

	summaries, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("ListRuns() returned %d summaries, want 2", len(summaries))
	}
	if summaries[0].RunID != "run-3" || summaries[1].RunID != "run-2" {
		t.Errorf("ListRuns() order = [%s, %s], want [run-3, run-2]",
			summaries[0].RunID, summaries[1].RunID)
	}
	if summaries[0].Communities != 4 {
		t.Errorf("summary Communities = %d, want 4", summaries[0].Communities)
	}
}

func TestRunStore_ExportJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-1", "run-2"} {
		if err := store.SaveReport(ctx, testReport(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveReport(%s) error = %v", id, err)
		}
	}

	exportPath := filepath.Join(tmpDir, "runs.jsonl")
	if err := store.ExportJSONL(ctx, exportPath); err != nil {
		t.Fatalf("ExportJSONL() error = %v", err)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("export has %d lines, want 2", len(lines))
	}
	// Oldest first.
	if !strings.Contains(lines[0], "run-1") {
		t.Errorf("first export line should be run-1, got: %s", lines[0])
	}
}

func TestRunStore_ReopenKeepsData(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.SaveReport(context.Background(), testReport("run-1", time.Now().UTC())); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}
	store.Close()

	reopened, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetReport(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("GetReport() after reopen error = %v", err)
	}
	if got.RunID != "run-1" {
		t.Errorf("GetReport() RunID = %v, want run-1", got.RunID)
	}
}
