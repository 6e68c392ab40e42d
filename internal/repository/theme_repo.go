package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThemeRepository interface {
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Theme, error)
	FindAll(ctx context.Context) ([]models.Theme, error)
	FindTopByReservationCount(ctx context.Context, start, end time.Time, limit int) ([]models.ThemeRanking, error)
	Upsert(ctx context.Context, theme *models.Theme) error
}

type themeRepository struct {
	db *gorm.DB
}

func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepository{db: db}
}

func (r *themeRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Theme, error) {
	var theme models.Theme
	if err := conn(r.db, tx).WithContext(ctx).First(&theme, id).Error; err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepository) FindAll(ctx context.Context) ([]models.Theme, error) {
	var themes []models.Theme
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&themes).Error; err != nil {
		return nil, err
	}
	return themes, nil
}

// FindTopByReservationCount counts reservations per theme whose date lies in
// [start, end). Themes without reservations in the window are left out.
func (r *themeRepository) FindTopByReservationCount(ctx context.Context, start, end time.Time, limit int) ([]models.ThemeRanking, error) {
	var ranking []models.ThemeRanking
	q := r.db.WithContext(ctx).
		Model(&models.Theme{}).
		Select("themes.id AS theme_id, themes.name, themes.description, themes.thumbnail, COUNT(reservations.id) AS reservation_count").
		Joins("JOIN reservation_details ON reservation_details.theme_id = themes.id").
		Joins("JOIN reservations ON reservations.detail_id = reservation_details.id").
		Where("reservation_details.date >= ? AND reservation_details.date < ?", models.DateOf(start), models.DateOf(end)).
		Group("themes.id, themes.name, themes.description, themes.thumbnail").
		Order("reservation_count DESC, themes.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&ranking).Error; err != nil {
		return nil, err
	}
	return ranking, nil
}

func (r *themeRepository) Upsert(ctx context.Context, theme *models.Theme) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "thumbnail", "updated_at"}),
	}).Create(theme).Error
}
