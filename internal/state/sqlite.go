package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_state (
	session_id TEXT PRIMARY KEY,
	config     TEXT NOT NULL,
	calendar   TEXT NOT NULL,
	saved_at   TEXT NOT NULL
);
`

// SQLiteStore persists session state to a SQLite database so the current
// calendar survives process restarts.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (and migrates) a SQLite-backed store at path.
// ":memory:" uses an in-memory database.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, session string, snap Snapshot) error {
	cfgJSON, err := json.Marshal(snap.Config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	calJSON, err := json.Marshal(snap.Calendar)
	if err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_state (session_id, config, calendar, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			config = excluded.config,
			calendar = excluded.calendar,
			saved_at = excluded.saved_at`,
		session, string(cfgJSON), string(calJSON), savedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving session state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, session string) (*Snapshot, error) {
	var cfgJSON, calJSON, savedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT config, calendar, saved_at FROM session_state WHERE session_id = ?`,
		session).Scan(&cfgJSON, &calJSON, &savedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session state: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(cfgJSON), &snap.Config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := json.Unmarshal([]byte(calJSON), &snap.Calendar); err != nil {
		return nil, fmt.Errorf("decoding calendar: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, savedAt); err == nil {
		snap.SavedAt = t
	}
	return &snap, nil
}

func (s *SQLiteStore) Clear(ctx context.Context, session string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM session_state WHERE session_id = ?`, session); err != nil {
		return fmt.Errorf("clearing session state: %w", err)
	}
	return nil
}
