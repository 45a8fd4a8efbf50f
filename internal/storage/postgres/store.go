// Package postgres implements storage.Store on PostgreSQL via GORM.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/edibulb/glucocoach/internal/apperrors"
	"github.com/edibulb/glucocoach/internal/config"
	"github.com/edibulb/glucocoach/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type readingRow struct {
	gorm.Model
	UserID    string `gorm:"index:idx_readings_user_date"`
	Date      string `gorm:"index:idx_readings_user_date"`
	TimeSlot  string
	Value     int
	MealState string
	Note      string
}

func (readingRow) TableName() string { return "readings" }

type profileRow struct {
	gorm.Model
	UserID    string `gorm:"uniqueIndex"`
	Goals     string
	Diet      string
	Exercise  string
	TargetMin int
	TargetMax int
}

func (profileRow) TableName() string { return "profiles" }

type summaryRow struct {
	gorm.Model
	UserID  string `gorm:"index"`
	Kind    string
	Message string
	Payload datatypes.JSON
}

func (summaryRow) TableName() string { return "summaries" }

// Store is the PostgreSQL implementation of storage.Store.
type Store struct {
	db *gorm.DB
}

// New connects to PostgreSQL and brings the schema up to date.
func New(cfg config.DBConfig) (*Store, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&readingRow{}, &profileRow{}, &summaryRow{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) AppendReading(ctx context.Context, userID string, r domain.Reading) (int64, error) {
	row := readingRow{
		UserID:    userID,
		Date:      r.Date,
		TimeSlot:  string(r.TimeSlot),
		Value:     r.Value,
		MealState: string(r.MealState),
		Note:      r.Note,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, apperrors.StorageUnavailable(err)
	}
	return int64(row.ID), nil
}

func (s *Store) QueryRange(ctx context.Context, userID, from, to string) ([]domain.Reading, error) {
	var rows []readingRow
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	return toReadings(rows), nil
}

func (s *Store) RecentReadings(ctx context.Context, userID string, n int) ([]domain.Reading, error) {
	var rows []readingRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	return toReadings(rows), nil
}

func (s *Store) DeleteReadings(ctx context.Context, userID string, ids []int64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&readingRow{})
	if result.Error != nil {
		return 0, apperrors.StorageUnavailable(result.Error)
	}
	return result.RowsAffected, nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	var row profileRow
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := domain.DefaultProfile()
		row = profileRow{
			UserID:    userID,
			TargetMin: def.TargetMin,
			TargetMax: def.TargetMax,
		}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return domain.Profile{}, apperrors.StorageUnavailable(err)
		}
	} else if err != nil {
		return domain.Profile{}, apperrors.StorageUnavailable(err)
	}
	return domain.Profile{
		Goals:     row.Goals,
		Diet:      row.Diet,
		Exercise:  row.Exercise,
		TargetMin: row.TargetMin,
		TargetMax: row.TargetMax,
	}, nil
}

func (s *Store) PutProfile(ctx context.Context, userID string, p domain.Profile) error {
	// Ensure the row exists, then overwrite every mutable column so empty
	// strings stick.
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).
		Model(&profileRow{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"goals":      p.Goals,
			"diet":       p.Diet,
			"exercise":   p.Exercise,
			"target_min": p.TargetMin,
			"target_max": p.TargetMax,
		}).Error
	if err != nil {
		return apperrors.StorageUnavailable(err)
	}
	return nil
}

func (s *Store) SaveSummary(ctx context.Context, userID string, rec domain.SummaryRecord) error {
	row := summaryRow{
		UserID:  userID,
		Kind:    rec.Kind,
		Message: rec.Message,
		Payload: datatypes.JSON(rec.Payload),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperrors.StorageUnavailable(err)
	}
	return nil
}

func (s *Store) ListSummaries(ctx context.Context, userID string, n int) ([]domain.SummaryRecord, error) {
	var rows []summaryRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	recs := make([]domain.SummaryRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, domain.SummaryRecord{
			ID:        int64(row.ID),
			Kind:      row.Kind,
			Message:   row.Message,
			Payload:   []byte(row.Payload),
			CreatedAt: row.CreatedAt,
		})
	}
	return recs, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toReadings(rows []readingRow) []domain.Reading {
	readings := make([]domain.Reading, 0, len(rows))
	for _, row := range rows {
		readings = append(readings, domain.Reading{
			ID:        int64(row.ID),
			Date:      row.Date,
			TimeSlot:  domain.TimeSlot(row.TimeSlot),
			Value:     row.Value,
			MealState: domain.MealState(row.MealState),
			Note:      row.Note,
		})
	}
	return readings
}
