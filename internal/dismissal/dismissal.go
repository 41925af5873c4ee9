// Package dismissal tracks insights a user has muted.
package dismissal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Store persists mute records, one per (user, insight)
type Store interface {
	Load(ctx context.Context, userID int64) (map[string]time.Time, error)
	Save(ctx context.Context, userID int64, insightID string, until time.Time) error
	Delete(ctx context.Context, userID int64, insightIDs ...string) error
	Prune(ctx context.Context, now time.Time) (int64, error)
}

// Filter applies mute records to rule output. A record mutes its insight
// while now is before its mute-until instant.
type Filter struct {
	store Store
	log   *logrus.Logger
}

// NewFilter initializes a dismissal filter over store
func NewFilter(store Store, log *logrus.Logger) *Filter {
	return &Filter{store: store, log: log}
}

// IsMuted reports whether insightID is muted for the user at now
func (f *Filter) IsMuted(ctx context.Context, userID int64, insightID string, now time.Time) (bool, error) {
	active, err := f.active(ctx, userID, now)
	if err != nil {
		return false, err
	}
	_, ok := active[insightID]
	return ok, nil
}

// Mute silences insightID for the user until the given instant
func (f *Filter) Mute(ctx context.Context, userID int64, insightID string, until time.Time) error {
	if insightID == "" {
		return fmt.Errorf("insight id is required")
	}
	if err := f.store.Save(ctx, userID, insightID, until.UTC()); err != nil {
		return fmt.Errorf("failed to mute insight %s: %w", insightID, err)
	}
	f.log.WithFields(logrus.Fields{"user_id": userID, "insight": insightID}).Infof("Insight muted until %s", until.UTC().Format(time.RFC3339))
	return nil
}

// Unmute removes the mute record of insightID
func (f *Filter) Unmute(ctx context.Context, userID int64, insightID string) error {
	if err := f.store.Delete(ctx, userID, insightID); err != nil {
		return fmt.Errorf("failed to unmute insight %s: %w", insightID, err)
	}
	return nil
}

// Apply drops muted insights, keeping the order of the rest. It also returns
// the earliest mute expiry among the dropped insights (zero when none were
// dropped), which bounds how long the filtered list stays valid. On a store
// failure the input is returned unchanged together with the error.
func (f *Filter) Apply(ctx context.Context, userID int64, list []models.Insight, now time.Time) ([]models.Insight, time.Time, error) {
	active, err := f.active(ctx, userID, now)
	if err != nil {
		return list, time.Time{}, err
	}
	if len(active) == 0 {
		return list, time.Time{}, nil
	}
	var validUntil time.Time
	out := make([]models.Insight, 0, len(list))
	for _, in := range list {
		if until, muted := active[in.ID]; muted {
			if validUntil.IsZero() || until.Before(validUntil) {
				validUntil = until
			}
			continue
		}
		out = append(out, in)
	}
	return out, validUntil, nil
}

// active loads the user's records and prunes the expired ones.
// A failed prune is only logged: expired records never mute anything.
func (f *Filter) active(ctx context.Context, userID int64, now time.Time) (map[string]time.Time, error) {
	records, err := f.store.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dismissals: %w", err)
	}
	var expired []string
	for id, until := range records {
		if !now.Before(until) {
			expired = append(expired, id)
			delete(records, id)
		}
	}
	if len(expired) > 0 {
		if err := f.store.Delete(ctx, userID, expired...); err != nil {
			f.log.WithField("user_id", userID).Warnf("Failed to prune expired dismissals: %v", err)
		}
	}
	return records, nil
}

// Prune removes every expired record in the store
func (f *Filter) Prune(ctx context.Context, now time.Time) (int64, error) {
	return f.store.Prune(ctx, now)
}

// MemoryStore keeps mute records in process memory
type MemoryStore struct {
	mu      sync.Mutex
	records map[int64]map[string]time.Time
}

// NewMemoryStore returns an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[int64]map[string]time.Time)}
}

func (m *MemoryStore) Load(_ context.Context, userID int64) (map[string]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]time.Time, len(m.records[userID]))
	for id, until := range m.records[userID] {
		out[id] = until
	}
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, userID int64, insightID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records[userID] == nil {
		m.records[userID] = make(map[string]time.Time)
	}
	m.records[userID][insightID] = until
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID int64, insightIDs ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range insightIDs {
		delete(m.records[userID], id)
	}
	return nil
}

func (m *MemoryStore) Prune(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, byID := range m.records {
		for id, until := range byID {
			if !now.Before(until) {
				delete(byID, id)
				n++
			}
		}
	}
	return n, nil
}
