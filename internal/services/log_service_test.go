package services

import (
	"context"
	"testing"
	"time"

	"github.com/edibulb/glucocoach/internal/apperrors"
	"github.com/edibulb/glucocoach/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestAddReadingPersistsNormalizedReading(t *testing.T) {
	store := newFakeStore()
	svc := NewLogService(store)

	reading, err := svc.AddReading(context.Background(), "alice", domain.ReadingInput{
		Date:     "2026-08-30",
		TimeSlot: "Noon",
		Value:    floatPtr(6.0),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), reading.ID)
	assert.Equal(t, 108, reading.Value)
	assert.Equal(t, domain.MealFasting, reading.MealState)
	require.Len(t, store.readings, 1)
}

func TestAddReadingRejectsBeforePersisting(t *testing.T) {
	store := newFakeStore()
	svc := NewLogService(store)

	_, err := svc.AddReading(context.Background(), "alice", domain.ReadingInput{
		Date:     "2026-08-30",
		TimeSlot: "Noon",
		Value:    floatPtr(1.0), // below domain floor
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeInvalidPayload, apperrors.TypeOf(err))
	assert.Empty(t, store.readings, "rejected payload must have no side effect")
}

func TestAddReadingSurfacesStorageFailure(t *testing.T) {
	store := newFakeStore()
	store.failWrites = true
	svc := NewLogService(store)

	_, err := svc.AddReading(context.Background(), "alice", domain.ReadingInput{
		Date:     "2026-08-30",
		TimeSlot: "Noon",
		Value:    floatPtr(6.0),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeStorageUnavailable, apperrors.TypeOf(err))
}

func TestListReadingsWeekWindowIncludesBoundary(t *testing.T) {
	store := newFakeStore()
	svc := NewLogService(store)
	ctx := context.Background()

	boundary := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	outside := time.Now().AddDate(0, 0, -8).Format("2006-01-02")
	_, err := store.AppendReading(ctx, "alice", domain.Reading{Date: boundary, Value: 100})
	require.NoError(t, err)
	_, err = store.AppendReading(ctx, "alice", domain.Reading{Date: outside, Value: 110})
	require.NoError(t, err)

	items, err := svc.ListReadings(ctx, "alice", "week")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, boundary, items[0].Date)

	items, err = svc.ListReadings(ctx, "alice", "month")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestDeleteReadingsRequiresIDs(t *testing.T) {
	svc := NewLogService(newFakeStore())

	_, err := svc.DeleteReadings(context.Background(), "alice", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeInvalidPayload, apperrors.TypeOf(err))
}

func TestDeleteReadingsCountsOnlyRemoved(t *testing.T) {
	store := newFakeStore()
	svc := NewLogService(store)
	ctx := context.Background()

	id, err := store.AppendReading(ctx, "alice", domain.Reading{Date: "2026-08-30", Value: 100})
	require.NoError(t, err)

	deleted, err := svc.DeleteReadings(ctx, "alice", []int64{id, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = svc.DeleteReadings(ctx, "alice", []int64{id})
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestPutProfileValidatesTargetRange(t *testing.T) {
	svc := NewLogService(newFakeStore())

	err := svc.PutProfile(context.Background(), "alice", domain.Profile{TargetMin: 150, TargetMax: 100})
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeInvalidPayload, apperrors.TypeOf(err))

	err = svc.PutProfile(context.Background(), "alice", domain.Profile{TargetMin: 80, TargetMax: 140})
	assert.NoError(t, err)
}
