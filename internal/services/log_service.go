package services

import (
	"context"
	"time"

	"github.com/edibulb/glucocoach/internal/apperrors"
	"github.com/edibulb/glucocoach/internal/domain"
	"github.com/edibulb/glucocoach/internal/glucose"
	"github.com/edibulb/glucocoach/internal/logger"
	"github.com/edibulb/glucocoach/internal/storage"
	"github.com/edibulb/glucocoach/internal/utils"
)

// LogService handles reading intake, range queries, deletion and profile
// access. Validation happens before any persistence attempt, so a rejected
// payload has no side effects.
type LogService struct {
	store storage.Store
}

func NewLogService(store storage.Store) *LogService {
	return &LogService{store: store}
}

// AddReading validates and persists one reading, returning it with the
// store-assigned id.
func (s *LogService) AddReading(ctx context.Context, userID string, input domain.ReadingInput) (domain.Reading, error) {
	reading, err := glucose.ValidateReading(input)
	if err != nil {
		return domain.Reading{}, err
	}

	id, err := s.store.AppendReading(ctx, userID, reading)
	if err != nil {
		return domain.Reading{}, err
	}
	reading.ID = id

	logger.Info("reading saved",
		"user", userID,
		"date", reading.Date,
		"slot", reading.TimeSlot,
		"value", reading.Value,
		"severity", glucose.Classify(reading.Value, reading.MealState))
	return reading, nil
}

// ListReadings returns the readings in the named range ("week" or "month"),
// newest first. Window bounds are local calendar dates, inclusive.
func (s *LogService) ListReadings(ctx context.Context, userID, rangeName string) ([]domain.Reading, error) {
	from, to := utils.DateWindow(time.Now(), utils.RangeDays(rangeName))
	return s.store.QueryRange(ctx, userID, from, to)
}

// DeleteReadings removes the given ids. Ids that do not exist are skipped;
// the returned count is what was actually removed.
func (s *LogService) DeleteReadings(ctx context.Context, userID string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.InvalidPayload("ids array required")
	}
	return s.store.DeleteReadings(ctx, userID, ids)
}

func (s *LogService) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	return s.store.GetProfile(ctx, userID)
}

func (s *LogService) PutProfile(ctx context.Context, userID string, p domain.Profile) error {
	if p.TargetMin >= p.TargetMax {
		return apperrors.InvalidPayload("target_min must be less than target_max")
	}
	return s.store.PutProfile(ctx, userID, p)
}
