package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/finance-service/internal/cache"
)

// CacheStore keeps insights cache entries in Postgres so that several API
// instances share them
type CacheStore struct {
	db *sql.DB
}

// NewCacheStore initializes a new Postgres-backed cache store
func NewCacheStore(db *sql.DB) *CacheStore {
	return &CacheStore{db: db}
}

func (s *CacheStore) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	var e cache.Entry
	err := s.db.QueryRowContext(ctx, `
		SELECT expires_at, payload
		FROM finance.insights_cache
		WHERE cache_key = $1`, key).Scan(&e.ExpiresAt, &e.Payload)
	if err == sql.ErrNoRows {
		return cache.Entry{}, false, nil
	}
	if err != nil {
		return cache.Entry{}, false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return e, true, nil
}

func (s *CacheStore) Set(ctx context.Context, key string, e cache.Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO finance.insights_cache (cache_key, expires_at, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (cache_key) DO UPDATE SET expires_at = EXCLUDED.expires_at, payload = EXCLUDED.payload`,
		key, e.ExpiresAt, e.Payload)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (s *CacheStore) DeletePrefix(ctx context.Context, prefix string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM finance.insights_cache WHERE cache_key LIKE $1`, likePrefix(prefix))
	if err != nil {
		return fmt.Errorf("failed to delete cache entries: %w", err)
	}
	return nil
}

func (s *CacheStore) Prune(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM finance.insights_cache WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return res.RowsAffected()
}

// likePrefix escapes LIKE wildcards in prefix and appends %
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
