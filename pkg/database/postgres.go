package database

import (
	"fmt"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB opens the pool. TranslateError turns unique violations into
// gorm.ErrDuplicatedKey.
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	return db, nil
}

// Migrate creates the schema. The unique indexes on reservation_details
// (theme_id, date, time_id), reservations (detail_id) and
// reservation_waitings (member_id, detail_id) come from the model tags and
// are what keeps concurrent inserts from double-booking a slot.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Theme{},
		&models.Time{},
		&models.Member{},
		&models.ReservationDetail{},
		&models.Reservation{},
		&models.ReservationWaiting{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
