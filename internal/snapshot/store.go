package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    name TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    payload BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

// Entry describes one stored snapshot.
type Entry struct {
	Name      string
	CreatedAt time.Time
	Size      int64
}

// Store manages snapshot persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the snapshot database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure snapshot directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
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

// Write stores a named snapshot, replacing any existing payload under the
// same name.
func (s *Store) Write(ctx context.Context, name string, createdAt time.Time, payload []byte) error {
	if name == "" {
		return errors.New("snapshot name is required")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO snapshots (name, created_at, payload) VALUES (?, ?, ?)
         ON CONFLICT(name) DO UPDATE SET created_at = excluded.created_at, payload = excluded.payload`,
		name,
		createdAt.UTC().Format(time.RFC3339Nano),
		payload,
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// List returns all snapshots ordered by ascending creation time.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT name, created_at, LENGTH(payload) FROM snapshots ORDER BY created_at, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			name    string
			rawTime string
			size    int64
		)
		if err := rows.Scan(&name, &rawTime, &size); err != nil {
			return nil, err
		}
		entry := Entry{Name: name, Size: size}
		if created, err := time.Parse(time.RFC3339Nano, rawTime); err == nil {
			entry.CreatedAt = created
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Read fetches a snapshot payload by name. A missing snapshot returns nil
// without error.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE name = ?`, name)
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return payload, nil
}

// Delete removes a snapshot by name.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("delete snapshot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Prune deletes all but the newest keep snapshots, oldest first, and returns
// the number removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM snapshots WHERE name NOT IN (
            SELECT name FROM snapshots ORDER BY created_at DESC, name DESC LIMIT ?
        )`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return res.RowsAffected()
}

// Latest returns the newest snapshot entry, or nil when the store is empty.
func (s *Store) Latest(ctx context.Context) (*Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT name, created_at, LENGTH(payload) FROM snapshots ORDER BY created_at DESC, name DESC LIMIT 1`,
	)
	var (
		name    string
		rawTime string
		size    int64
	)
	if err := row.Scan(&name, &rawTime, &size); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	entry := &Entry{Name: name, Size: size}
	if created, err := time.Parse(time.RFC3339Nano, rawTime); err == nil {
		entry.CreatedAt = created
	}
	return entry, nil
}
