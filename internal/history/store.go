// ABOUTME: Local SQLite history of traffic overview snapshots
// ABOUTME: Lets the CLI show traffic deltas between runs without server help

package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS traffic_snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	taken_at TEXT NOT NULL,
	total_in INTEGER NOT NULL,
	total_out INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON traffic_snapshots(taken_at);
`

// Snapshot is one recorded traffic overview.
type Snapshot struct {
	ID       int64
	TakenAt  time.Time
	TotalIn  int64
	TotalOut int64
}

// Store persists traffic snapshots in a local SQLite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// DefaultPath returns the history database location under the XDG data dir.
func DefaultPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "rfrp", "history.db")
}

// Open creates a history store at the given path. The schema is created if
// it doesn't exist, and parent directories are created if needed.
func Open(path string) (*Store, error) {
	logger := slog.Default().With("component", "history")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one snapshot.
func (s *Store) Record(ctx context.Context, totalIn, totalOut int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO traffic_snapshots (taken_at, total_in, total_out) VALUES (?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), totalIn, totalOut)
	if err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}
	return nil
}

// Recent returns up to limit snapshots, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, taken_at, total_in, total_out FROM traffic_snapshots ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		var takenAt string
		if err := rows.Scan(&snap.ID, &takenAt, &snap.TotalIn, &snap.TotalOut); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, takenAt); err == nil {
			snap.TakenAt = t
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// Prune deletes all but the newest keep snapshots.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM traffic_snapshots WHERE id NOT IN (SELECT id FROM traffic_snapshots ORDER BY id DESC LIMIT ?)", keep)
	if err != nil {
		return fmt.Errorf("pruning snapshots: %w", err)
	}
	return nil
}
