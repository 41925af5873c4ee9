// Package cache memoizes computed insights payloads per user, variant and month.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dan9191/finance-service/internal/metrics"
	"github.com/Dan9191/finance-service/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultTTL is used when no TTL is configured
const DefaultTTL = 30 * time.Second

// Key identifies one cached payload. Month is "YYYY-MM"; a new month yields a
// new key, so entries from the previous month are never served.
type Key struct {
	UserID        int64
	IncludeFuture bool
	Fast          bool
	Month         string
}

// NewKey builds the key for the calendar month of now
func NewKey(userID int64, includeFuture, fast bool, now time.Time) Key {
	return Key{UserID: userID, IncludeFuture: includeFuture, Fast: fast, Month: now.UTC().Format("2006-01")}
}

func (k Key) String() string {
	return fmt.Sprintf("%s%t|%t|%s", UserPrefix(k.UserID), k.IncludeFuture, k.Fast, k.Month)
}

// UserPrefix is the common prefix of every key of a user
func UserPrefix(userID int64) string {
	return fmt.Sprintf("insights:%d|", userID)
}

// Entry is a stored payload with its expiry
type Entry struct {
	ExpiresAt time.Time
	Payload   []byte
}

// Store persists cache entries. Implementations must tolerate concurrent
// writers to the same key; the last write wins.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
	DeletePrefix(ctx context.Context, prefix string) error
	Prune(ctx context.Context, now time.Time) (int64, error)
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service is the insights cache. Store failures are logged and reported as
// misses so that they never block a response.
type Service struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
	log   *logrus.Logger
}

// NewService initializes a cache service over store
func NewService(store Store, ttl time.Duration, log *logrus.Logger, opts ...Option) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Service{store: store, ttl: ttl, now: time.Now, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the payload for key if present and not expired
func (s *Service) Get(ctx context.Context, key Key) (*models.InsightsPayload, bool) {
	p, expiresAt, ok := s.load(ctx, key)
	if !ok {
		metrics.IncCacheLookup("miss")
		return nil, false
	}
	if !s.now().Before(expiresAt) {
		metrics.IncCacheLookup("miss")
		return nil, false
	}
	metrics.IncCacheLookup("hit")
	return p, true
}

// Stale returns the payload for key regardless of expiry. Used as a last
// resort when a fresh computation cannot finish in time.
func (s *Service) Stale(ctx context.Context, key Key) (*models.InsightsPayload, bool) {
	p, _, ok := s.load(ctx, key)
	return p, ok
}

func (s *Service) load(ctx context.Context, key Key) (*models.InsightsPayload, time.Time, bool) {
	e, ok, err := s.store.Get(ctx, key.String())
	if err != nil {
		metrics.IncCacheLookup("error")
		s.log.WithField("key", key.String()).Warnf("Cache read failed: %v", err)
		return nil, time.Time{}, false
	}
	if !ok {
		return nil, time.Time{}, false
	}
	var p models.InsightsPayload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		s.log.WithField("key", key.String()).Warnf("Cache entry unreadable: %v", err)
		return nil, time.Time{}, false
	}
	return &p, e.ExpiresAt, true
}

// Set stores p under key for the configured TTL
func (s *Service) Set(ctx context.Context, key Key, p *models.InsightsPayload) {
	s.SetUntil(ctx, key, p, time.Time{})
}

// SetUntil stores p under key until the earlier of the TTL and until.
// A zero until means the TTL alone applies.
func (s *Service) SetUntil(ctx context.Context, key Key, p *models.InsightsPayload, until time.Time) {
	data, err := json.Marshal(p)
	if err != nil {
		s.log.WithField("key", key.String()).Warnf("Failed to encode cache entry: %v", err)
		return
	}
	expiresAt := s.now().Add(s.ttl)
	if !until.IsZero() && until.Before(expiresAt) {
		expiresAt = until
	}
	if err := s.store.Set(ctx, key.String(), Entry{ExpiresAt: expiresAt, Payload: data}); err != nil {
		s.log.WithField("key", key.String()).Warnf("Cache write failed: %v", err)
	}
}

// Invalidate drops every entry of the user
func (s *Service) Invalidate(ctx context.Context, userID int64) error {
	if err := s.store.DeletePrefix(ctx, UserPrefix(userID)); err != nil {
		return fmt.Errorf("failed to invalidate cache for user %d: %w", userID, err)
	}
	return nil
}

// Prune removes expired entries from the store
func (s *Service) Prune(ctx context.Context) (int64, error) {
	return s.store.Prune(ctx, s.now())
}
