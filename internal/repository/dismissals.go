package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// DismissalStore persists muted insights in Postgres
type DismissalStore struct {
	db *sql.DB
}

// NewDismissalStore initializes a new dismissal store
func NewDismissalStore(db *sql.DB) *DismissalStore {
	return &DismissalStore{db: db}
}

// Load returns insight id -> mute-until for the user
func (s *DismissalStore) Load(ctx context.Context, userID int64) (map[string]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT insight_id, mute_until
		FROM finance.insight_dismissals
		WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dismissals: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var until time.Time
		if err := rows.Scan(&id, &until); err != nil {
			return nil, fmt.Errorf("failed to scan dismissal: %w", err)
		}
		out[id] = until
	}
	return out, rows.Err()
}

// Save creates or extends a mute record
func (s *DismissalStore) Save(ctx context.Context, userID int64, insightID string, until time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO finance.insight_dismissals (user_id, insight_id, mute_until)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, insight_id) DO UPDATE SET mute_until = EXCLUDED.mute_until`,
		userID, insightID, until)
	if err != nil {
		return fmt.Errorf("failed to save dismissal: %w", err)
	}
	return nil
}

// Delete removes mute records of the user
func (s *DismissalStore) Delete(ctx context.Context, userID int64, insightIDs ...string) error {
	if len(insightIDs) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM finance.insight_dismissals
		WHERE user_id = $1 AND insight_id = ANY($2)`,
		userID, pq.Array(insightIDs))
	if err != nil {
		return fmt.Errorf("failed to delete dismissals: %w", err)
	}
	return nil
}

// Prune removes every record whose mute has expired
func (s *DismissalStore) Prune(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM finance.insight_dismissals WHERE mute_until <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to prune dismissals: %w", err)
	}
	return res.RowsAffected()
}
