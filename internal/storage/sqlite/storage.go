// Package sqlite provides the SQLite-backed match history store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dogfinder/dogfinder/internal/domain"
	_ "modernc.org/sqlite"
)

// DBFileName is the history database file name inside the state directory.
const DBFileName = "history.db"

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS match_history (
	id TEXT PRIMARY KEY,
	dog_id TEXT NOT NULL,
	dog_name TEXT NOT NULL DEFAULT '',
	breed TEXT NOT NULL DEFAULT '',
	zip_code TEXT NOT NULL DEFAULT '',
	favorites_count INTEGER NOT NULL DEFAULT 0,
	user_email TEXT NOT NULL DEFAULT '',
	matched_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_match_history_matched_at ON match_history(matched_at);
`

// HistoryStore persists successful matches.
type HistoryStore struct {
	db *sql.DB
}

// DefaultPath returns the history database path inside stateDir.
func DefaultPath(stateDir string) string {
	return filepath.Join(stateDir, DBFileName)
}

// NewHistoryStore opens or creates the history database at dbPath.
func NewHistoryStore(dbPath string) (*HistoryStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}

	store := &HistoryStore{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying SQLite connection.
func (s *HistoryStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *HistoryStore) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	return nil
}

// Record inserts rec. Records with an existing id are replaced.
func (s *HistoryStore) Record(ctx context.Context, rec domain.MatchRecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}
	if rec.MatchedAt.IsZero() {
		rec.MatchedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO match_history
			(id, dog_id, dog_name, breed, zip_code, favorites_count, user_email, matched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.DogID, rec.DogName, rec.Breed, rec.ZipCode, rec.FavoritesCount, rec.UserEmail,
		rec.MatchedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("sqlite storage: record match: %w", err)
	}
	return nil
}

func validateRecord(rec domain.MatchRecord) error {
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("sqlite storage: %w: id cannot be empty", ErrInvalidRecord)
	}
	if strings.TrimSpace(rec.DogID) == "" {
		return fmt.Errorf("sqlite storage: %w: dog id cannot be empty", ErrInvalidRecord)
	}
	if rec.FavoritesCount < 0 {
		return fmt.Errorf("sqlite storage: %w: favorites count cannot be negative", ErrInvalidRecord)
	}
	return nil
}
