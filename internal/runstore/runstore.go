// Package runstore persists integration run reports to SQLite.
// Reports are stored whole as JSON alongside a few scalar columns used for
// listing, and can be exported to JSONL for diff-friendly inspection.
package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/analyticase/casegraph/internal/config"
	"github.com/analyticase/casegraph/internal/integrate"
)

// ErrNoRuns is returned when the store holds no runs yet.
var ErrNoRuns = errors.New("no runs recorded")

// Summary is the scalar projection of a stored run, used for listings.
type Summary struct {
	RunID           string    `json:"run_id"`
	CreatedAt       time.Time `json:"created_at"`
	Seed            int64     `json:"seed"`
	LexNodes        int       `json:"lex_nodes"`
	ADNodes         int       `json:"ad_nodes"`
	MappingEdges    int       `json:"mapping_edges"`
	UnmappedADNodes int       `json:"unmapped_ad_nodes"`
	Communities     int       `json:"communities"`
}

// RunStore persists run reports in .casegraph/casegraph.db under a project
// root. It is safe for concurrent use.
type RunStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// Open creates or opens the run store rooted at projectRoot.
func Open(projectRoot string) (*RunStore, error) {
	dir := filepath.Join(projectRoot, config.Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", config.Dir, err)
	}

	dbPath := filepath.Join(dir, "casegraph.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &RunStore{db: db, dbPath: dbPath}, nil
}

// SaveReport stores a run report. The run ID must be unique.
func (s *RunStore) SaveReport(ctx context.Context, report *integrate.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.RunID == "" {
		return fmt.Errorf("report run ID is required")
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, seed, lex_nodes, ad_nodes,
			mapping_edges, unmapped_ad_nodes, communities, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.CreatedAt.UTC().Format(time.RFC3339Nano),
		report.Config.Seed,
		report.LexNodes,
		report.ADNodes,
		report.MappingEdges,
		report.UnmappedADNodes,
		report.Communities,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// GetReport returns the stored report for a run ID.
func (s *RunStore) GetReport(ctx context.Context, runID string) (*integrate.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRowContext(ctx, `SELECT report FROM runs WHERE id = ?`, runID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNoRuns)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	return unmarshalReport(data)
}

// LatestReport returns the most recently created run's report.
func (s *RunStore) LatestReport(ctx context.Context) (*integrate.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}

	return unmarshalReport(data)
}

// ListRuns returns run summaries, most recent first.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, seed, lex_nodes, ad_nodes,
			mapping_edges, unmapped_ad_nodes, communities
		FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		var created string
		if err := rows.Scan(&s.RunID, &created, &s.Seed, &s.LexNodes, &s.ADNodes,
			&s.MappingEdges, &s.UnmappedADNodes, &s.Communities); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			s.CreatedAt = t
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// ExportJSONL writes every stored report to path, one JSON object per line,
// oldest first.
func (s *RunStore) ExportJSONL(ctx context.Context, path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT report FROM runs ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return fmt.Errorf("failed to scan run: %w", err)
		}
		if _, err := f.WriteString(data + "\n"); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}

	return rows.Err()
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func unmarshalReport(data string) (*integrate.Report, error) {
	var report integrate.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}
