package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"github.com/Eursukkul/roomescape-service/internal/repository"
	"gorm.io/gorm"
)

// MemberReservation is one row of a member's own reservations and waitings.
type MemberReservation struct {
	ID      uint
	Theme   string
	Date    time.Time
	StartAt string
	Status  models.ReservationStatus
	// Rank is the 1-based queue position of a waiting entry, 0 for reservations.
	Rank int64
}

// TimeAvailability reports whether a time is booked for a theme and date.
type TimeAvailability struct {
	Time   models.Time
	Booked bool
}

type ReservationService interface {
	Create(ctx context.Context, req SlotRequest) (*models.Reservation, error)
	Cancel(ctx context.Context, id uint) (*models.Reservation, error)
	List(ctx context.Context) ([]models.Reservation, error)
	ListMine(ctx context.Context, memberID uint) ([]MemberReservation, error)
	TimeAvailability(ctx context.Context, themeID uint, date time.Time) ([]TimeAvailability, error)
}

type reservationService struct {
	stores Stores
	settings
}

func NewReservationService(stores Stores, opts ...Option) ReservationService {
	return &reservationService{stores: stores, settings: newSettings(opts)}
}

func (s *reservationService) Create(ctx context.Context, req SlotRequest) (*models.Reservation, error) {
	var result *models.Reservation

	err := s.stores.Tx.WithinTx(ctx, func(tx *gorm.DB) error {
		// 1. Referenced rows must exist
		member, err := s.stores.findMember(ctx, tx, req.MemberID)
		if err != nil {
			return err
		}
		detail, err := s.stores.resolveDetail(ctx, tx, req)
		if err != nil {
			return err
		}

		// 2. No past dates
		if detail.Date.Before(s.today()) {
			return ErrPastDate
		}

		// 3. Early conflict check; the unique indexes are the real guard
		candidate := &models.Reservation{MemberID: member.ID, DetailID: detail.ID, Detail: detail}
		existing, err := s.stores.Reservations.FindAllByThemeAndDate(ctx, tx, detail.ThemeID, detail.Date)
		if err != nil {
			return err
		}
		for i := range existing {
			if existing[i].SameAs(candidate) {
				return ErrSlotReserved
			}
		}

		// 4. Persist
		if detail.ID == 0 {
			if err := s.stores.Details.FindOrCreate(ctx, tx, detail); err != nil {
				return err
			}
			candidate.DetailID = detail.ID
		}
		if err := s.stores.Reservations.Create(ctx, tx, candidate); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrSlotReserved
			}
			return err
		}

		candidate.Member = member
		result = candidate
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotReserved) {
			s.metrics.Conflict("slot")
		}
		return nil, err
	}

	s.metrics.ReservationCreated()
	s.invalidateRankings(ctx)
	s.publish(ctx, EventReservationCreated, newReservationEvent(result.ID, result.MemberID, result.Detail))
	return result, nil
}

// Cancel deletes the reservation and promotes the earliest waiting entry for
// the same detail, if any. It returns the promoted reservation or nil.
func (s *reservationService) Cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	var cancelled, promoted *models.Reservation

	err := s.stores.Tx.WithinTx(ctx, func(tx *gorm.DB) error {
		reservation, err := s.stores.Reservations.FindByID(ctx, tx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrReservationNotFound
			}
			return err
		}

		if err := s.stores.Reservations.DeleteByID(ctx, tx, reservation.ID); err != nil {
			if repository.IsNotFound(err) {
				return ErrReservationNotFound
			}
			return err
		}
		cancelled = reservation

		next, err := s.stores.Waitings.FindEarliestByDetailID(ctx, tx, reservation.DetailID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil
			}
			return err
		}

		if err := s.stores.Waitings.DeleteByID(ctx, tx, next.ID); err != nil {
			return err
		}
		next.Detail = reservation.Detail
		promoted = next.ToReservation()
		return s.stores.Reservations.Create(ctx, tx, promoted)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ReservationCancelled()
	s.invalidateRankings(ctx)
	s.publish(ctx, EventReservationCancelled, newReservationEvent(cancelled.ID, cancelled.MemberID, cancelled.Detail))
	if promoted != nil {
		s.metrics.WaitingPromoted()
		s.publish(ctx, EventWaitingPromoted, newReservationEvent(promoted.ID, promoted.MemberID, promoted.Detail))
	}
	return promoted, nil
}

func (s *reservationService) List(ctx context.Context) ([]models.Reservation, error) {
	return s.stores.Reservations.FindAllOrderByDateAsc(ctx)
}

func (s *reservationService) ListMine(ctx context.Context, memberID uint) ([]MemberReservation, error) {
	reservations, err := s.stores.Reservations.FindByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	waitings, err := s.stores.Waitings.FindByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	mine := make([]MemberReservation, 0, len(reservations)+len(waitings))
	for i := range reservations {
		mine = append(mine, memberEntry(reservations[i].ID, reservations[i].Detail, reservations[i].Status(), 0))
	}
	for i := range waitings {
		mine = append(mine, memberEntry(waitings[i].ID, waitings[i].Detail, waitings[i].Status(), waitings[i].QueuePosition))
	}

	slices.SortStableFunc(mine, func(a, b MemberReservation) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.StartAt, b.StartAt)
	})
	return mine, nil
}

func memberEntry(id uint, detail *models.ReservationDetail, status models.ReservationStatus, rank int64) MemberReservation {
	entry := MemberReservation{ID: id, Status: status, Rank: rank}
	if detail != nil {
		entry.Date = detail.Date
		if detail.Theme != nil {
			entry.Theme = detail.Theme.Name
		}
		if detail.Time != nil {
			entry.StartAt = detail.Time.StartAt
		}
	}
	return entry
}

// TimeAvailability partitions all times into booked and free for the theme
// on the given date.
func (s *reservationService) TimeAvailability(ctx context.Context, themeID uint, date time.Time) ([]TimeAvailability, error) {
	if _, err := s.stores.Themes.FindByID(ctx, nil, themeID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrThemeNotFound
		}
		return nil, err
	}

	times, err := s.stores.Times.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	reservations, err := s.stores.Reservations.FindAllByThemeAndDate(ctx, nil, themeID, date)
	if err != nil {
		return nil, err
	}

	booked := make(map[uint]struct{}, len(reservations))
	for _, r := range reservations {
		if r.Detail != nil {
			booked[r.Detail.TimeID] = struct{}{}
		}
	}

	result := make([]TimeAvailability, len(times))
	for i, t := range times {
		_, ok := booked[t.ID]
		result[i] = TimeAvailability{Time: t, Booked: ok}
	}
	return result, nil
}
