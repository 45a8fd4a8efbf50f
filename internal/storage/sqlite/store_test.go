package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/edibulb/glucocoach/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sample(date string, value int) domain.Reading {
	return domain.Reading{
		Date:      date,
		TimeSlot:  domain.SlotMorning,
		Value:     value,
		MealState: domain.MealFasting,
	}
}

func TestAppendReadingAssignsIncreasingIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id1, err := store.AppendReading(ctx, "alice", sample("2026-08-29", 100))
	require.NoError(t, err)
	id2, err := store.AppendReading(ctx, "alice", sample("2026-08-29", 110))
	require.NoError(t, err)

	assert.Greater(t, id2, id1)
}

func TestQueryRangeOrderAndBounds(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AppendReading(ctx, "alice", sample("2026-08-23", 100))
	require.NoError(t, err)
	_, err = store.AppendReading(ctx, "alice", sample("2026-08-25", 110))
	require.NoError(t, err)
	_, err = store.AppendReading(ctx, "alice", sample("2026-08-25", 120))
	require.NoError(t, err)
	_, err = store.AppendReading(ctx, "alice", sample("2026-08-22", 90)) // outside window
	require.NoError(t, err)
	_, err = store.AppendReading(ctx, "bob", sample("2026-08-25", 140)) // other tenant
	require.NoError(t, err)

	// A reading dated exactly seven days before "today" is inside the
	// week window: both bounds are inclusive.
	items, err := store.QueryRange(ctx, "alice", "2026-08-23", "2026-08-30")
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Descending by date then id.
	assert.Equal(t, "2026-08-25", items[0].Date)
	assert.Equal(t, 120, items[0].Value)
	assert.Equal(t, 110, items[1].Value)
	assert.Equal(t, "2026-08-23", items[2].Date)
}

func TestDeleteReadingsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AppendReading(ctx, "alice", sample("2026-08-29", 100))
	require.NoError(t, err)

	deleted, err := store.DeleteReadings(ctx, "alice", []int64{id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = store.DeleteReadings(ctx, "alice", []int64{id})
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestDeleteReadingsScopedToUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AppendReading(ctx, "alice", sample("2026-08-29", 100))
	require.NoError(t, err)

	deleted, err := store.DeleteReadings(ctx, "bob", []int64{id})
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestGetProfileCreatesDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profile, err := store.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTargetMin, profile.TargetMin)
	assert.Equal(t, domain.DefaultTargetMax, profile.TargetMax)
	assert.Empty(t, profile.Goals)
}

func TestPutProfileUpdatesInPlace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	updated := domain.Profile{
		Goals:     "lower morning readings",
		Diet:      "low carb",
		Exercise:  "walk daily",
		TargetMin: 90,
		TargetMax: 150,
	}
	require.NoError(t, store.PutProfile(ctx, "alice", updated))

	profile, err := store.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, updated, profile)

	// A second put overwrites, including back to empty strings.
	updated.Goals = ""
	require.NoError(t, store.PutProfile(ctx, "alice", updated))
	profile, err = store.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, profile.Goals)
}

func TestRecentReadings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, v := range []int{100, 110, 120, 130} {
		_, err := store.AppendReading(ctx, "alice", sample(fmt.Sprintf("2026-08-2%d", i), v))
		require.NoError(t, err)
	}

	recent, err := store.RecentReadings(ctx, "alice", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, 130, recent[0].Value)
	assert.Equal(t, 110, recent[2].Value)
}

func TestSummariesRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := domain.SummaryRecord{
		Kind:    "weekly",
		Message: "Keep it up",
		Payload: []byte(`{"avg":120}`),
	}
	require.NoError(t, store.SaveSummary(ctx, "alice", rec))
	require.NoError(t, store.SaveSummary(ctx, "alice", domain.SummaryRecord{Kind: "coach", Message: "Go for a walk"}))

	recs, err := store.ListSummaries(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "coach", recs[0].Kind) // newest first
	assert.Equal(t, "weekly", recs[1].Kind)
	assert.JSONEq(t, `{"avg":120}`, string(recs[1].Payload))
	assert.WithinDuration(t, time.Now(), recs[0].CreatedAt, time.Minute)
}
