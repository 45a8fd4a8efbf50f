package postgres

import (
	"fmt"
	"sort"

	"github.com/edibulb/glucocoach/internal/logger"
	"gorm.io/gorm"
)

// Migration is one schema change, applied at most once.
type Migration struct {
	ID string
	Up func(*gorm.DB) error
}

// MigrationRecord tracks which migrations have been executed.
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

var migrations = make(map[string]Migration)

// Register adds a migration to the registry. Called from init funcs so the
// set is fixed before RunMigrations runs.
func Register(id string, up func(*gorm.DB) error) {
	migrations[id] = Migration{ID: id, Up: up}
}

// RunMigrations executes all pending migrations in id order.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var ids []string
	for id := range migrations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var executed []MigrationRecord
	if err := db.Find(&executed).Error; err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}
	executedMap := make(map[string]bool)
	for _, m := range executed {
		executedMap[m.ID] = true
	}

	for _, id := range ids {
		if executedMap[id] {
			continue
		}
		logger.Info("running migration", "id", id)
		if err := migrations[id].Up(db); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", id, err)
		}
		if err := db.Create(&MigrationRecord{ID: id}).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", id, err)
		}
	}

	return nil
}

func init() {
	// Readings were once keyed by a single implicit user; backfill the
	// tenant key so old rows stay visible to the default user.
	Register("202601_backfill_default_user", func(db *gorm.DB) error {
		return db.Exec(`UPDATE readings SET user_id = 'default' WHERE user_id IS NULL OR user_id = ''`).Error
	})
}
