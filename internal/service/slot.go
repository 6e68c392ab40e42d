package service

import (
	"context"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"github.com/Eursukkul/roomescape-service/internal/repository"
	"gorm.io/gorm"
)

// SlotRequest names a member and a slot, either by detail id or by
// (date, time, theme).
type SlotRequest struct {
	MemberID uint
	DetailID uint
	Date     time.Time
	TimeID   uint
	ThemeID  uint
}

// Lookups take the transaction handle so a Create never needs a second
// pooled connection while its transaction is open.
func (s *Stores) findMember(ctx context.Context, tx *gorm.DB, id uint) (*models.Member, error) {
	member, err := s.Members.FindByID(ctx, tx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// resolveDetail loads the requested detail. For a (date, time, theme)
// request whose slot has never been referenced it returns an unsaved detail
// with ID 0.
func (s *Stores) resolveDetail(ctx context.Context, tx *gorm.DB, req SlotRequest) (*models.ReservationDetail, error) {
	if req.DetailID != 0 {
		detail, err := s.Details.FindByID(ctx, tx, req.DetailID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrDetailNotFound
			}
			return nil, err
		}
		return detail, nil
	}

	if req.Date.IsZero() || req.TimeID == 0 || req.ThemeID == 0 {
		return nil, ErrMissingSlot
	}

	t, err := s.Times.FindByID(ctx, tx, req.TimeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTimeNotFound
		}
		return nil, err
	}
	theme, err := s.Themes.FindByID(ctx, tx, req.ThemeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrThemeNotFound
		}
		return nil, err
	}

	date := models.DateOf(req.Date)
	detail, err := s.Details.FindBySlot(ctx, tx, theme.ID, t.ID, date)
	if err == nil {
		return detail, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}
	return &models.ReservationDetail{
		ThemeID: theme.ID,
		TimeID:  t.ID,
		Date:    date,
		Theme:   theme,
		Time:    t,
	}, nil
}
