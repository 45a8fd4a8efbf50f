package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/edibulb/glucocoach/internal/apperrors"
	"github.com/edibulb/glucocoach/internal/cache"
	"github.com/edibulb/glucocoach/internal/domain"
	"github.com/edibulb/glucocoach/internal/glucose"
	"github.com/edibulb/glucocoach/internal/logger"
	"github.com/edibulb/glucocoach/internal/storage"
	"github.com/edibulb/glucocoach/internal/utils"
)

// recentForCoach is how many recent readings a coach tip prompt sees.
const recentForCoach = 3

// SummaryService computes the rolling weekly summary and drives the
// text-generation collaborator. The numbers are computed before the
// collaborator is called, so a generation failure never loses them.
type SummaryService struct {
	store     storage.Store
	generator domain.TextGenerator
	cache     cache.SummaryCache
}

func NewSummaryService(store storage.Store, generator domain.TextGenerator, c cache.SummaryCache) *SummaryService {
	return &SummaryService{store: store, generator: generator, cache: c}
}

// Assemble combines profile, readings and aggregate into the fact sheet
// handed to the text generator. Readings are chronological; no severity is
// embedded.
func Assemble(profile domain.Profile, items []domain.Reading, agg domain.Aggregate) domain.SummaryPayload {
	return domain.SummaryPayload{
		Average: agg.Average,
		Spike:   agg.Spike,
		Items:   glucose.SortChronological(items),
		Profile: profile,
	}
}

// WeeklyRaw computes the numeric weekly summary without any generation.
func (s *SummaryService) WeeklyRaw(ctx context.Context, userID string) (domain.SummaryPayload, error) {
	from, to := utils.DateWindow(time.Now(), utils.WeekDays)
	items, err := s.store.QueryRange(ctx, userID, from, to)
	if err != nil {
		return domain.SummaryPayload{}, err
	}
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return domain.SummaryPayload{}, err
	}
	return Assemble(profile, items, glucose.Aggregate(items)), nil
}

// Weekly computes the weekly summary and asks the collaborator for prose.
// On generation failure the returned summary still carries the aggregate
// and the error is SummaryUnavailable.
func (s *SummaryService) Weekly(ctx context.Context, userID string) (domain.WeeklySummary, error) {
	payload, err := s.WeeklyRaw(ctx, userID)
	if err != nil {
		return domain.WeeklySummary{}, err
	}
	summary := domain.WeeklySummary{Average: payload.Average, Spike: payload.Spike}

	cacheKey := userID + ":weekly:" + utils.TodayLocal()
	if s.cache != nil {
		if msg, ok := s.cache.Get(ctx, cacheKey); ok {
			summary.Message = msg
			return summary, nil
		}
	}

	msg, err := s.generator.WeeklyReport(ctx, payload)
	if err != nil {
		return summary, asSummaryUnavailable(err)
	}
	summary.Message = msg

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, msg)
	}
	s.record(ctx, userID, "weekly", msg, payload)
	return summary, nil
}

// CoachTip asks the collaborator for a one-off tip about a single reading.
func (s *SummaryService) CoachTip(ctx context.Context, userID string, req domain.CoachRequest) (string, error) {
	if req.Value < 1 {
		return "", apperrors.InvalidPayload("value is required")
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	recent, err := s.store.RecentReadings(ctx, userID, recentForCoach)
	if err != nil {
		return "", err
	}

	msg, err := s.generator.CoachTip(ctx, req, profile, recent)
	if err != nil {
		return "", asSummaryUnavailable(err)
	}
	s.record(ctx, userID, "coach", msg, req)
	return msg, nil
}

// ListHistory returns previously generated messages, newest first.
func (s *SummaryService) ListHistory(ctx context.Context, userID string, n int) ([]domain.SummaryRecord, error) {
	return s.store.ListSummaries(ctx, userID, n)
}

// asSummaryUnavailable types a collaborator failure, leaving errors that
// already carry the type untouched.
func asSummaryUnavailable(err error) error {
	if apperrors.TypeOf(err) == apperrors.TypeSummaryUnavailable {
		return err
	}
	return apperrors.SummaryUnavailable(err)
}

// record keeps an audit row for a generated message. Audit failures are
// logged, not surfaced; the message has already been produced.
func (s *SummaryService) record(ctx context.Context, userID, kind, msg string, facts any) {
	payload, err := json.Marshal(facts)
	if err != nil {
		payload = nil
	}
	rec := domain.SummaryRecord{Kind: kind, Message: msg, Payload: payload}
	if err := s.store.SaveSummary(ctx, userID, rec); err != nil {
		logger.Warn("failed to record generated summary", "user", userID, "kind", kind, "error", err)
	}
}
