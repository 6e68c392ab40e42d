package service

import (
	"context"
	"errors"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"github.com/Eursukkul/roomescape-service/internal/repository"
	"gorm.io/gorm"
)

type WaitingService interface {
	Create(ctx context.Context, req SlotRequest) (*models.ReservationWaiting, error)
	Cancel(ctx context.Context, id, requesterID uint) error
}

type waitingService struct {
	stores Stores
	settings
}

func NewWaitingService(stores Stores, opts ...Option) WaitingService {
	return &waitingService{stores: stores, settings: newSettings(opts)}
}

// Create queues the member for a slot someone else already reserved.
func (s *waitingService) Create(ctx context.Context, req SlotRequest) (*models.ReservationWaiting, error) {
	var result *models.ReservationWaiting

	err := s.stores.Tx.WithinTx(ctx, func(tx *gorm.DB) error {
		member, err := s.stores.findMember(ctx, tx, req.MemberID)
		if err != nil {
			return err
		}
		detail, err := s.stores.resolveDetail(ctx, tx, req)
		if err != nil {
			return err
		}
		if detail.Date.Before(s.today()) {
			return ErrPastDate
		}

		// Waiting only makes sense behind an existing reservation
		if detail.ID == 0 {
			return ErrSlotAvailable
		}
		reservation, err := s.stores.Reservations.FindByDetailID(ctx, tx, detail.ID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrSlotAvailable
			}
			return err
		}
		if reservation.MemberID == member.ID {
			return ErrAlreadyReserved
		}

		exists, err := s.stores.Waitings.ExistsByMemberAndDetail(ctx, tx, member.ID, detail.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateWaiting
		}

		waiting := &models.ReservationWaiting{
			MemberID:  member.ID,
			DetailID:  detail.ID,
			CreatedAt: s.now(),
		}
		if err := s.stores.Waitings.Create(ctx, tx, waiting); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateWaiting
			}
			return err
		}

		waiting.Member = member
		waiting.Detail = detail
		result = waiting
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateWaiting):
			s.metrics.Conflict("waiting")
		case errors.Is(err, ErrAlreadyReserved):
			s.metrics.Conflict("own_reservation")
		}
		return nil, err
	}

	s.metrics.WaitingCreated()
	s.publish(ctx, EventWaitingCreated, newReservationEvent(result.ID, result.MemberID, result.Detail))
	return result, nil
}

// Cancel removes a waiting entry owned by the requester.
func (s *waitingService) Cancel(ctx context.Context, id, requesterID uint) error {
	return s.stores.Tx.WithinTx(ctx, func(tx *gorm.DB) error {
		waiting, err := s.stores.Waitings.FindByID(ctx, tx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrWaitingNotFound
			}
			return err
		}
		if waiting.MemberID != requesterID {
			return ErrNotOwner
		}
		if err := s.stores.Waitings.DeleteByID(ctx, tx, id); err != nil {
			if repository.IsNotFound(err) {
				return ErrWaitingNotFound
			}
			return err
		}
		return nil
	})
}
