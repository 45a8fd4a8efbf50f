// Package storage defines the durable store contract the analytics engine
// depends on. Every operation carries the owning user as a first-class
// tenant key.
package storage

import (
	"context"

	"github.com/edibulb/glucocoach/internal/domain"
)

// Store is the interface to durable storage. Readings are append-only;
// deletes are explicit and idempotent. Implementations report I/O failure
// with apperrors.StorageUnavailable.
type Store interface {
	// AppendReading persists one reading and returns the assigned id.
	// Ids are monotonically increasing within a user's series.
	AppendReading(ctx context.Context, userID string, r domain.Reading) (int64, error)

	// QueryRange returns readings with from <= date <= to, ordered
	// descending by (date, id) as delivered to callers.
	QueryRange(ctx context.Context, userID, from, to string) ([]domain.Reading, error)

	// RecentReadings returns the last n readings by insertion order.
	RecentReadings(ctx context.Context, userID string, n int) ([]domain.Reading, error)

	// DeleteReadings removes the given ids and returns the count actually
	// deleted. Missing ids are not an error.
	DeleteReadings(ctx context.Context, userID string, ids []int64) (int64, error)

	// GetProfile returns the user's profile, creating the default one on
	// first access.
	GetProfile(ctx context.Context, userID string) (domain.Profile, error)

	// PutProfile updates the user's profile in place.
	PutProfile(ctx context.Context, userID string, p domain.Profile) error

	// SaveSummary records a generated coaching message for audit.
	SaveSummary(ctx context.Context, userID string, rec domain.SummaryRecord) error

	// ListSummaries returns the most recent generated messages, newest
	// first.
	ListSummaries(ctx context.Context, userID string, n int) ([]domain.SummaryRecord, error)

	Close() error
}
