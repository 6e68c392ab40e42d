package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DetailRepository interface {
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ReservationDetail, error)
	FindBySlot(ctx context.Context, tx *gorm.DB, themeID, timeID uint, date time.Time) (*models.ReservationDetail, error)
	FindOrCreate(ctx context.Context, tx *gorm.DB, detail *models.ReservationDetail) error
}

type detailRepository struct {
	db *gorm.DB
}

func NewDetailRepository(db *gorm.DB) DetailRepository {
	return &detailRepository{db: db}
}

func (r *detailRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ReservationDetail, error) {
	var detail models.ReservationDetail
	err := conn(r.db, tx).WithContext(ctx).
		Preload("Theme").
		Preload("Time").
		First(&detail, id).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *detailRepository) FindBySlot(ctx context.Context, tx *gorm.DB, themeID, timeID uint, date time.Time) (*models.ReservationDetail, error) {
	var detail models.ReservationDetail
	err := conn(r.db, tx).WithContext(ctx).
		Preload("Theme").
		Preload("Time").
		Where("theme_id = ? AND time_id = ? AND date = ?", themeID, timeID, models.DateOf(date)).
		First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindOrCreate inserts the detail unless its slot already exists, and fills
// in the id either way.
func (r *detailRepository) FindOrCreate(ctx context.Context, tx *gorm.DB, detail *models.ReservationDetail) error {
	db := conn(r.db, tx).WithContext(ctx)
	detail.Date = models.DateOf(detail.Date)

	row := models.ReservationDetail{ThemeID: detail.ThemeID, TimeID: detail.TimeID, Date: detail.Date}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "theme_id"}, {Name: "date"}, {Name: "time_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return err
	}

	if row.ID == 0 {
		if err := db.Where("theme_id = ? AND time_id = ? AND date = ?", row.ThemeID, row.TimeID, row.Date).
			First(&row).Error; err != nil {
			return err
		}
	}

	detail.ID = row.ID
	detail.CreatedAt = row.CreatedAt
	return nil
}
