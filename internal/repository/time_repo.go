package repository

import (
	"context"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TimeRepository interface {
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Time, error)
	FindAll(ctx context.Context) ([]models.Time, error)
	Upsert(ctx context.Context, t *models.Time) error
}

type timeRepository struct {
	db *gorm.DB
}

func NewTimeRepository(db *gorm.DB) TimeRepository {
	return &timeRepository{db: db}
}

func (r *timeRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Time, error) {
	var t models.Time
	if err := conn(r.db, tx).WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *timeRepository) FindAll(ctx context.Context) ([]models.Time, error) {
	var times []models.Time
	if err := r.db.WithContext(ctx).Order("start_at ASC, id ASC").Find(&times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

func (r *timeRepository) Upsert(ctx context.Context, t *models.Time) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_at", "updated_at"}),
	}).Create(t).Error
}
