package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dogfinder/dogfinder/internal/domain"
)

const selectColumns = `id, dog_id, dog_name, breed, zip_code, favorites_count, user_email, matched_at`

// List returns up to limit records, newest first. A non-positive limit
// uses DefaultListLimit.
func (s *HistoryStore) List(ctx context.Context, limit int) ([]domain.MatchRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM match_history ORDER BY matched_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list history: %w", err)
	}
	defer rows.Close()

	records := []domain.MatchRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: iterate history: %w", err)
	}
	return records, nil
}

// Get returns the record with id.
func (s *HistoryStore) Get(ctx context.Context, id string) (domain.MatchRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM match_history WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MatchRecord{}, fmt.Errorf("sqlite storage: get record: %w: id %s", ErrRecordNotFound, id)
	}
	return rec, err
}

// Count returns the number of stored records.
func (s *HistoryStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite storage: count history: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (domain.MatchRecord, error) {
	var rec domain.MatchRecord
	var matchedAt string
	err := sc.Scan(&rec.ID, &rec.DogID, &rec.DogName, &rec.Breed, &rec.ZipCode, &rec.FavoritesCount, &rec.UserEmail, &matchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("sqlite storage: scan record: %w", err)
	}
	rec.MatchedAt, err = time.Parse(timeLayout, matchedAt)
	if err != nil {
		return rec, fmt.Errorf("sqlite storage: parse matched_at %q: %w", matchedAt, err)
	}
	return rec, nil
}
