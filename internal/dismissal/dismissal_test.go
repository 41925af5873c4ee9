package dismissal

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var (
	now  = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	list = []models.Insight{{ID: "run-rate-risk"}, {ID: "X"}, {ID: "no-budgets"}}
)

func ids(in []models.Insight) []string {
	var out []string
	for _, i := range in {
		out = append(out, i.ID)
	}
	return out
}

func TestFilter_MuteForSevenDays(t *testing.T) {
	store := NewMemoryStore()
	f := NewFilter(store, quietLogger())
	ctx := context.Background()

	require.NoError(t, f.Mute(ctx, 1, "X", now.Add(7*24*time.Hour)))

	got, validUntil, err := f.Apply(ctx, 1, list, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-rate-risk", "no-budgets"}, ids(got))
	assert.Equal(t, now.Add(7*24*time.Hour), validUntil)

	got, _, _ = f.Apply(ctx, 1, list, now.Add(7*24*time.Hour-time.Second))
	assert.Equal(t, []string{"run-rate-risk", "no-budgets"}, ids(got))

	got, validUntil, _ = f.Apply(ctx, 1, list, now.Add(7*24*time.Hour))
	assert.Equal(t, []string{"run-rate-risk", "X", "no-budgets"}, ids(got), "insight reappears once the mute expires")
	assert.True(t, validUntil.IsZero())

	records, _ := store.Load(ctx, 1)
	assert.Empty(t, records, "expired record is pruned on read")
}

func TestFilter_ApplyReportsEarliestDroppedExpiry(t *testing.T) {
	f := NewFilter(NewMemoryStore(), quietLogger())
	ctx := context.Background()
	require.NoError(t, f.Mute(ctx, 1, "X", now.Add(48*time.Hour)))
	require.NoError(t, f.Mute(ctx, 1, "no-budgets", now.Add(time.Hour)))
	require.NoError(t, f.Mute(ctx, 1, "not-in-list", now.Add(time.Minute)))

	got, validUntil, err := f.Apply(ctx, 1, list, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-rate-risk"}, ids(got))
	assert.Equal(t, now.Add(time.Hour), validUntil, "mutes of absent insights do not bound the result")
}

func TestFilter_ScopedPerUser(t *testing.T) {
	f := NewFilter(NewMemoryStore(), quietLogger())
	ctx := context.Background()
	require.NoError(t, f.Mute(ctx, 1, "X", now.Add(time.Hour)))

	muted, err := f.IsMuted(ctx, 1, "X", now)
	require.NoError(t, err)
	assert.True(t, muted)

	muted, err = f.IsMuted(ctx, 2, "X", now)
	require.NoError(t, err)
	assert.False(t, muted)
}

func TestFilter_Unmute(t *testing.T) {
	f := NewFilter(NewMemoryStore(), quietLogger())
	ctx := context.Background()
	require.NoError(t, f.Mute(ctx, 1, "X", now.Add(time.Hour)))
	require.NoError(t, f.Unmute(ctx, 1, "X"))

	muted, _ := f.IsMuted(ctx, 1, "X", now)
	assert.False(t, muted)
}

func TestFilter_RejectsEmptyID(t *testing.T) {
	f := NewFilter(NewMemoryStore(), quietLogger())
	assert.Error(t, f.Mute(context.Background(), 1, "", now))
}

type brokenStore struct{ *MemoryStore }

func (brokenStore) Load(context.Context, int64) (map[string]time.Time, error) {
	return nil, errors.New("read timeout")
}

func TestFilter_StoreFailureReturnsUnfiltered(t *testing.T) {
	f := NewFilter(brokenStore{NewMemoryStore()}, quietLogger())

	got, _, err := f.Apply(context.Background(), 1, list, now)
	assert.Error(t, err)
	assert.Equal(t, list, got)
}

func TestMemoryStore_Prune(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, 1, "a", now.Add(-time.Minute)))
	require.NoError(t, store.Save(ctx, 1, "b", now.Add(time.Minute)))
	require.NoError(t, store.Save(ctx, 2, "a", now))

	n, err := store.Prune(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	records, _ := store.Load(ctx, 1)
	assert.Len(t, records, 1)
}
