package services

import (
	"context"
	"errors"

	"github.com/edibulb/glucocoach/internal/apperrors"
	"github.com/edibulb/glucocoach/internal/domain"
)

// fakeStore is an in-memory storage.Store for service tests.
type fakeStore struct {
	readings   []domain.Reading
	nextID     int64
	profiles   map[string]domain.Profile
	summaries  []domain.SummaryRecord
	failWrites bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: make(map[string]domain.Profile)}
}

func (f *fakeStore) AppendReading(ctx context.Context, userID string, r domain.Reading) (int64, error) {
	if f.failWrites {
		return 0, apperrors.StorageUnavailable(errors.New("disk on fire"))
	}
	f.nextID++
	r.ID = f.nextID
	f.readings = append(f.readings, r)
	return r.ID, nil
}

func (f *fakeStore) QueryRange(ctx context.Context, userID, from, to string) ([]domain.Reading, error) {
	var out []domain.Reading
	for _, r := range f.readings {
		if r.Date >= from && r.Date <= to {
			out = append(out, r)
		}
	}
	// Descending by (date, id), as the contract promises.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (f *fakeStore) RecentReadings(ctx context.Context, userID string, n int) ([]domain.Reading, error) {
	var out []domain.Reading
	for i := len(f.readings) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, f.readings[i])
	}
	return out, nil
}

func (f *fakeStore) DeleteReadings(ctx context.Context, userID string, ids []int64) (int64, error) {
	var deleted int64
	var kept []domain.Reading
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for _, r := range f.readings {
		if want[r.ID] {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.readings = kept
	return deleted, nil
}

func (f *fakeStore) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	p := domain.DefaultProfile()
	f.profiles[userID] = p
	return p, nil
}

func (f *fakeStore) PutProfile(ctx context.Context, userID string, p domain.Profile) error {
	f.profiles[userID] = p
	return nil
}

func (f *fakeStore) SaveSummary(ctx context.Context, userID string, rec domain.SummaryRecord) error {
	if f.failWrites {
		return apperrors.StorageUnavailable(errors.New("disk on fire"))
	}
	f.summaries = append(f.summaries, rec)
	return nil
}

func (f *fakeStore) ListSummaries(ctx context.Context, userID string, n int) ([]domain.SummaryRecord, error) {
	return f.summaries, nil
}

func (f *fakeStore) Close() error { return nil }

// fakeGenerator is a scriptable domain.TextGenerator.
type fakeGenerator struct {
	message string
	err     error
	calls   int
}

func (g *fakeGenerator) WeeklyReport(ctx context.Context, payload domain.SummaryPayload) (string, error) {
	g.calls++
	return g.message, g.err
}

func (g *fakeGenerator) CoachTip(ctx context.Context, req domain.CoachRequest, profile domain.Profile, recent []domain.Reading) (string, error) {
	g.calls++
	return g.message, g.err
}
