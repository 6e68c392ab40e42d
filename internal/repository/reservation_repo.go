package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error)
	FindByDetailID(ctx context.Context, tx *gorm.DB, detailID uint) (*models.Reservation, error)
	FindAllOrderByDateAsc(ctx context.Context) ([]models.Reservation, error)
	FindAllByThemeAndDate(ctx context.Context, tx *gorm.DB, themeID uint, date time.Time) ([]models.Reservation, error)
	FindByMemberID(ctx context.Context, memberID uint) ([]models.Reservation, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uint) error
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func withDetail(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN reservation_details ON reservation_details.id = reservations.detail_id").
		Joins("JOIN times ON times.id = reservation_details.time_id").
		Preload("Member").
		Preload("Detail.Theme").
		Preload("Detail.Time")
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return conn(r.db, tx).WithContext(ctx).Omit(clause.Associations).Create(reservation).Error
}

// FindByID locks the row when called inside a transaction.
func (r *reservationRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	q := conn(r.db, tx).WithContext(ctx).Preload("Member").Preload("Detail.Theme").Preload("Detail.Time")
	if tx != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindByDetailID(ctx context.Context, tx *gorm.DB, detailID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := conn(r.db, tx).WithContext(ctx).
		Where("detail_id = ?", detailID).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindAllOrderByDateAsc(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := withDetail(r.db.WithContext(ctx)).
		Order("reservation_details.date ASC, times.start_at ASC, reservations.id ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindAllByThemeAndDate(ctx context.Context, tx *gorm.DB, themeID uint, date time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := withDetail(conn(r.db, tx).WithContext(ctx)).
		Where("reservation_details.theme_id = ? AND reservation_details.date = ?", themeID, models.DateOf(date)).
		Order("times.start_at ASC, reservations.id ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindByMemberID(ctx context.Context, memberID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := withDetail(r.db.WithContext(ctx)).
		Where("reservations.member_id = ?", memberID).
		Order("reservation_details.date ASC, times.start_at ASC, reservations.id ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) DeleteByID(ctx context.Context, tx *gorm.DB, id uint) error {
	result := conn(r.db, tx).WithContext(ctx).Delete(&models.Reservation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
