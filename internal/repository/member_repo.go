package repository

import (
	"context"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"gorm.io/gorm"
)

type MemberRepository interface {
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) error
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Member, error) {
	var member models.Member
	if err := conn(r.db, tx).WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}
