// Package sqlite implements storage.Store on SQLite via database/sql and
// the pure-Go modernc driver. Used for local single-file deployments and
// as the in-memory store in tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/edibulb/glucocoach/internal/apperrors"
	"github.com/edibulb/glucocoach/internal/domain"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS readings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	time_slot TEXT NOT NULL,
	value INTEGER NOT NULL,
	meal_state TEXT NOT NULL,
	note TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_readings_user_date ON readings(user_id, date);

CREATE TABLE IF NOT EXISTS profiles (
	user_id TEXT PRIMARY KEY,
	goals TEXT NOT NULL DEFAULT '',
	diet TEXT NOT NULL DEFAULT '',
	exercise TEXT NOT NULL DEFAULT '',
	target_min INTEGER NOT NULL,
	target_max INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS summaries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	message TEXT NOT NULL,
	payload TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_summaries_user ON summaries(user_id);
`

// Store is a SQLite implementation of storage.Store.
type Store struct {
	db *sql.DB
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore() (*Store, error) {
	return newStore(":memory:")
}

// NewFileStore creates a file-based store.
func NewFileStore(path string) (*Store, error) {
	return newStore(path)
}

func newStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) AppendReading(ctx context.Context, userID string, r domain.Reading) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO readings (user_id, date, time_slot, value, meal_state, note)
		VALUES (?, ?, ?, ?, ?, ?)
	`, userID, r.Date, string(r.TimeSlot), r.Value, string(r.MealState), r.Note)
	if err != nil {
		return 0, apperrors.StorageUnavailable(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.StorageUnavailable(err)
	}
	return id, nil
}

func (s *Store) QueryRange(ctx context.Context, userID, from, to string) ([]domain.Reading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, time_slot, value, meal_state, note
		FROM readings
		WHERE user_id = ? AND date BETWEEN ? AND ?
		ORDER BY date DESC, id DESC
	`, userID, from, to)
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	return scanReadings(rows)
}

func (s *Store) RecentReadings(ctx context.Context, userID string, n int) ([]domain.Reading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, time_slot, value, meal_state, note
		FROM readings
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, userID, n)
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	return scanReadings(rows)
}

func (s *Store) DeleteReadings(ctx context.Context, userID string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM readings WHERE user_id = ? AND id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, apperrors.StorageUnavailable(err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.StorageUnavailable(err)
	}
	return deleted, nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	def := domain.DefaultProfile()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO profiles (user_id, goals, diet, exercise, target_min, target_max)
		VALUES (?, '', '', '', ?, ?)
	`, userID, def.TargetMin, def.TargetMax)
	if err != nil {
		return domain.Profile{}, apperrors.StorageUnavailable(err)
	}

	var p domain.Profile
	err = s.db.QueryRowContext(ctx, `
		SELECT goals, diet, exercise, target_min, target_max FROM profiles WHERE user_id = ?
	`, userID).Scan(&p.Goals, &p.Diet, &p.Exercise, &p.TargetMin, &p.TargetMax)
	if err != nil {
		return domain.Profile{}, apperrors.StorageUnavailable(err)
	}
	return p, nil
}

func (s *Store) PutProfile(ctx context.Context, userID string, p domain.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, goals, diet, exercise, target_min, target_max)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			goals = excluded.goals,
			diet = excluded.diet,
			exercise = excluded.exercise,
			target_min = excluded.target_min,
			target_max = excluded.target_max
	`, userID, p.Goals, p.Diet, p.Exercise, p.TargetMin, p.TargetMax)
	if err != nil {
		return apperrors.StorageUnavailable(err)
	}
	return nil
}

func (s *Store) SaveSummary(ctx context.Context, userID string, rec domain.SummaryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries (user_id, kind, message, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, userID, rec.Kind, rec.Message, string(rec.Payload), time.Now().UTC())
	if err != nil {
		return apperrors.StorageUnavailable(err)
	}
	return nil
}

func (s *Store) ListSummaries(ctx context.Context, userID string, n int) ([]domain.SummaryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, message, payload, created_at
		FROM summaries
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, userID, n)
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	defer rows.Close()

	var recs []domain.SummaryRecord
	for rows.Next() {
		var rec domain.SummaryRecord
		var payload string
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Message, &payload, &rec.CreatedAt); err != nil {
			return nil, apperrors.StorageUnavailable(err)
		}
		rec.Payload = []byte(payload)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	return recs, nil
}

func scanReadings(rows *sql.Rows) ([]domain.Reading, error) {
	defer rows.Close()
	var readings []domain.Reading
	for rows.Next() {
		var r domain.Reading
		var slot, state string
		if err := rows.Scan(&r.ID, &r.Date, &slot, &r.Value, &state, &r.Note); err != nil {
			return nil, apperrors.StorageUnavailable(err)
		}
		r.TimeSlot = domain.TimeSlot(slot)
		r.MealState = domain.MealState(state)
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	return readings, nil
}
