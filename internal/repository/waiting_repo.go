package repository

import (
	"context"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WaitingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, waiting *models.ReservationWaiting) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ReservationWaiting, error)
	ExistsByMemberAndDetail(ctx context.Context, tx *gorm.DB, memberID, detailID uint) (bool, error)
	FindEarliestByDetailID(ctx context.Context, tx *gorm.DB, detailID uint) (*models.ReservationWaiting, error)
	FindByMemberID(ctx context.Context, memberID uint) ([]models.ReservationWaiting, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uint) error
}

type waitingRepository struct {
	db *gorm.DB
}

func NewWaitingRepository(db *gorm.DB) WaitingRepository {
	return &waitingRepository{db: db}
}

func (r *waitingRepository) Create(ctx context.Context, tx *gorm.DB, waiting *models.ReservationWaiting) error {
	return conn(r.db, tx).WithContext(ctx).Omit(clause.Associations).Create(waiting).Error
}

func (r *waitingRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ReservationWaiting, error) {
	var waiting models.ReservationWaiting
	if err := conn(r.db, tx).WithContext(ctx).First(&waiting, id).Error; err != nil {
		return nil, err
	}
	return &waiting, nil
}

func (r *waitingRepository) ExistsByMemberAndDetail(ctx context.Context, tx *gorm.DB, memberID, detailID uint) (bool, error) {
	var count int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.ReservationWaiting{}).
		Where("member_id = ? AND detail_id = ?", memberID, detailID).
		Count(&count).Error
	return count > 0, err
}

// FindEarliestByDetailID returns the next waiting entry to promote, locked
// for the rest of the transaction.
func (r *waitingRepository) FindEarliestByDetailID(ctx context.Context, tx *gorm.DB, detailID uint) (*models.ReservationWaiting, error) {
	var waiting models.ReservationWaiting
	q := conn(r.db, tx).WithContext(ctx).
		Preload("Member").
		Where("detail_id = ?", detailID).
		Order("created_at ASC, id ASC")
	if tx != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&waiting).Error; err != nil {
		return nil, err
	}
	return &waiting, nil
}

// FindByMemberID returns the member's waitings with QueuePosition set. The
// position is numbered over every waiting on the detail before filtering.
func (r *waitingRepository) FindByMemberID(ctx context.Context, memberID uint) ([]models.ReservationWaiting, error) {
	ranked := r.db.Model(&models.ReservationWaiting{}).
		Select("*, ROW_NUMBER() OVER (PARTITION BY detail_id ORDER BY created_at ASC, id ASC) AS queue_position")

	var waitings []models.ReservationWaiting
	err := r.db.WithContext(ctx).
		Table("(?) AS reservation_waitings", ranked).
		Preload("Detail.Theme").
		Preload("Detail.Time").
		Where("member_id = ?", memberID).
		Order("created_at ASC, id ASC").
		Find(&waitings).Error
	if err != nil {
		return nil, err
	}
	return waitings, nil
}

func (r *waitingRepository) DeleteByID(ctx context.Context, tx *gorm.DB, id uint) error {
	result := conn(r.db, tx).WithContext(ctx).Delete(&models.ReservationWaiting{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
