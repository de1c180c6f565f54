// File: cleanup.go
// Purpose: Removes old match history entries based on age thresholds with
// optional dry-run support.
package sqlite

import (
	"context"
	"fmt"
	"time"
)

// Prune removes records older than daysThreshold days and returns how many
// were (or, with dryRun, would be) removed. A threshold of 0 removes all.
func (s *HistoryStore) Prune(ctx context.Context, daysThreshold int, dryRun bool) (int, error) {
	if daysThreshold < 0 {
		return 0, fmt.Errorf("sqlite storage: days threshold must be >= 0")
	}

	where := ""
	var args []any
	if daysThreshold > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -daysThreshold).Format(timeLayout)
		where = " WHERE matched_at < ?"
		args = append(args, cutoff)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_history`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite storage: count history for cleanup: %w", err)
	}
	if count == 0 || dryRun {
		return count, nil
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM match_history`+where, args...); err != nil {
		return 0, fmt.Errorf("sqlite storage: cleanup history: %w", err)
	}
	return count, nil
}
