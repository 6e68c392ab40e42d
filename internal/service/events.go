package service

import (
	"context"
	"log"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/models"
)

const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
	EventWaitingCreated       = "waiting.created"
	EventWaitingPromoted      = "waiting.promoted"
)

// ReservationEvent is the broker payload for reservation and waiting changes.
type ReservationEvent struct {
	ID       uint   `json:"id"`
	MemberID uint   `json:"member_id"`
	DetailID uint   `json:"detail_id"`
	ThemeID  uint   `json:"theme_id"`
	TimeID   uint   `json:"time_id"`
	Date     string `json:"date"`
}

func newReservationEvent(id, memberID uint, detail *models.ReservationDetail) ReservationEvent {
	ev := ReservationEvent{ID: id, MemberID: memberID}
	if detail != nil {
		ev.DetailID = detail.ID
		ev.ThemeID = detail.ThemeID
		ev.TimeID = detail.TimeID
		ev.Date = detail.Date.Format(models.DateLayout)
	}
	return ev
}

// publish is best-effort: the transaction has already committed.
func (s settings) publish(ctx context.Context, routingKey string, ev ReservationEvent) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.publisher.Publish(ctx, routingKey, ev); err != nil {
		log.Printf("[ReservationService] failed to publish %s for %d: %v", routingKey, ev.ID, err)
	}
}

// invalidateRankings is best-effort like publish; a failure only leaves
// rankings stale until the cache TTL.
func (s settings) invalidateRankings(ctx context.Context) {
	if s.rankings == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.rankings.Clear(ctx); err != nil {
		log.Printf("[ReservationService] failed to clear ranking cache: %v", err)
	}
}
