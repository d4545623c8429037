// Package history persists finished build reports in a local SQLite
// database so past outcomes survive process restarts and can be listed and
// pruned from the CLI.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/refman/internal/logfields"
	"git.home.luguber.info/inful/refman/internal/site"
)

// Entry is one recorded build, the scalar columns without the full report.
type Entry struct {
	ID              string
	Project         string
	Version         string
	Outcome         string
	Start           time.Time
	End             time.Time
	RenderedPages   int
	SkippedPages    int
	APIDocsRebuilt  bool
	ExamplesRebuilt bool
}

// Duration returns the wall-clock duration of the recorded build.
func (e Entry) Duration() time.Duration { return e.End.Sub(e.Start) }

// Store records build reports in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens (or creates) the history database at dbPath. Use ":memory:"
// for an ephemeral store.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		project TEXT NOT NULL,
		version TEXT NOT NULL,
		outcome TEXT NOT NULL,
		started INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		rendered_pages INTEGER NOT NULL,
		skipped_pages INTEGER NOT NULL,
		api_rebuilt INTEGER NOT NULL,
		examples_rebuilt INTEGER NOT NULL,
		report BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started);
	CREATE INDEX IF NOT EXISTS idx_builds_outcome ON builds(outcome);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one finished build.
func (s *Store) Append(ctx context.Context, report *site.BuildReport) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO builds
		 (id, project, version, outcome, started, finished, rendered_pages, skipped_pages, api_rebuilt, examples_rebuilt, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.Project, report.Version, string(report.Outcome),
		report.Start.UnixMilli(), report.End.UnixMilli(),
		report.RenderedPages, report.SkippedPages,
		report.APIDocsRebuilt, report.ExamplesRebuilt, payload,
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

// Recent returns the newest builds, most recent first. A non-positive limit
// defaults to 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project, version, outcome, started, finished, rendered_pages, skipped_pages, api_rebuilt, examples_rebuilt
		 FROM builds ORDER BY started DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Report returns the full persisted report JSON for one build.
func (s *Store) Report(ctx context.Context, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload []byte
	err := s.db.QueryRowContext(ctx, "SELECT report FROM builds WHERE id = ?", id).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("query build %s: %w", id, err)
	}
	return payload, nil
}

// Prune deletes all but the newest keep builds and returns how many rows
// were removed. A non-positive keep removes nothing.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM builds WHERE id NOT IN
		 (SELECT id FROM builds ORDER BY started DESC, rowid DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune builds: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count pruned rows: %w", err)
	}
	return int(n), nil
}

// Observer returns a build observer that records every completed build,
// including failed ones. Recording errors are logged, never propagated to
// the build.
func (s *Store) Observer() site.BuildObserver {
	return site.ObserverFuncs{
		BuildComplete: func(r *site.BuildReport) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.Append(ctx, r); err != nil {
				slog.Warn("Failed to record build history", logfields.Error(err))
			}
		},
	}
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, finished int64
		if err := rows.Scan(&e.ID, &e.Project, &e.Version, &e.Outcome,
			&started, &finished, &e.RenderedPages, &e.SkippedPages,
			&e.APIDocsRebuilt, &e.ExamplesRebuilt); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		e.Start = time.UnixMilli(started)
		e.End = time.UnixMilli(finished)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return entries, nil
}
