package checkpoint

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages checkpoint persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the checkpoint database and applies
// migrations. Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure checkpoint directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Fingerprint derives a stable identity for a content file from its name,
// size, and modification time. A touched or rewritten file fingerprints
// differently and is migrated again.
func Fingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return fmt.Sprintf("%s:%d:%d", filepath.Base(path), info.Size(), info.ModTime().UnixNano()), nil
}

// FilterPending returns the subset of files whose fingerprints have not been
// recorded yet, preserving input order.
func (s *Store) FilterPending(ctx context.Context, files []string) ([]string, error) {
	pending := make([]string, 0, len(files))
	for _, path := range files {
		fingerprint, err := Fingerprint(path)
		if err != nil {
			return nil, err
		}
		var count int
		row := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM migrated_files WHERE fingerprint = ?", fingerprint)
		if err := row.Scan(&count); err != nil {
			return nil, fmt.Errorf("scan fingerprint: %w", err)
		}
		if count == 0 {
			pending = append(pending, path)
		}
	}
	return pending, nil
}

// RecordFiles marks content files as migrated under the given run.
func (s *Store) RecordFiles(ctx context.Context, runID string, files []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkpoint tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, path := range files {
		fingerprint, err := Fingerprint(path)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO migrated_files (fingerprint, path, run_id, recorded_at)
             VALUES (?, ?, ?, ?)
             ON CONFLICT(fingerprint) DO UPDATE SET run_id = excluded.run_id, recorded_at = excluded.recorded_at`,
			fingerprint,
			path,
			runID,
			now,
		); err != nil {
			return fmt.Errorf("record file %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit checkpoint tx: %w", err)
	}
	return nil
}

// RunRecord summarizes one completed run.
type RunRecord struct {
	ID        string
	Src       string
	Dst       string
	Started   time.Time
	Finished  time.Time
	Processed int
	Exported  int
	Dropped   int
}

// RecordRun stores a run summary row.
func (s *Store) RecordRun(ctx context.Context, run RunRecord) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, src, dst, started_at, finished_at, processed, exported, dropped)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Src,
		run.Dst,
		run.Started.UTC().Format(time.RFC3339Nano),
		run.Finished.UTC().Format(time.RFC3339Nano),
		run.Processed,
		run.Exported,
		run.Dropped,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// Runs returns recorded run summaries, newest first.
func (s *Store) Runs(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, src, dst, started_at, finished_at, processed, exported, dropped
         FROM runs ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Src, &run.Dst, &started, &finished, &run.Processed, &run.Exported, &run.Dropped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Started, _ = time.Parse(time.RFC3339Nano, started)
		run.Finished, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Reset clears all recorded files and runs.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"migrated_files", "runs"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
