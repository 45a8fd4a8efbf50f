package domain

import "context"

// TextGenerator produces coaching prose from structured facts. Implemented
// by the AI service; failure must never lose the facts already computed.
type TextGenerator interface {
	WeeklyReport(ctx context.Context, payload SummaryPayload) (string, error)
	CoachTip(ctx context.Context, req CoachRequest, profile Profile, recent []Reading) (string, error)
}

// LogService handles reading intake, querying and deletion.
type LogService interface {
	AddReading(ctx context.Context, userID string, input ReadingInput) (Reading, error)
	ListReadings(ctx context.Context, userID, rangeName string) ([]Reading, error)
	DeleteReadings(ctx context.Context, userID string, ids []int64) (int64, error)
	GetProfile(ctx context.Context, userID string) (Profile, error)
	PutProfile(ctx context.Context, userID string, p Profile) error
}

// SummaryService computes rolling aggregates and coaching messages.
type SummaryService interface {
	WeeklyRaw(ctx context.Context, userID string) (SummaryPayload, error)
	Weekly(ctx context.Context, userID string) (WeeklySummary, error)
	CoachTip(ctx context.Context, userID string, req CoachRequest) (string, error)
	ListHistory(ctx context.Context, userID string, n int) ([]SummaryRecord, error)
}

// ReadingInput is the raw, display-unit payload a client submits.
// Value is a pointer so a missing field is distinguishable from zero.
type ReadingInput struct {
	Date      string   `json:"date"`
	TimeSlot  string   `json:"timeSlot"`
	Value     *float64 `json:"value"` // mmol/L
	MealState string   `json:"mealState"`
	Note      string   `json:"note"`
}

// WeeklySummary is the generated weekly report. Message may be empty when
// the text-generation collaborator failed; the numbers are always present.
type WeeklySummary struct {
	Average int    `json:"avg"`
	Spike   Spike  `json:"spike"`
	Message string `json:"message"`
}
