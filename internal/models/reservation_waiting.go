package models

import "time"

// ReservationWaiting queues a member for an already reserved detail.
// Unique per (member, detail); promoted in (created_at, id) order.
type ReservationWaiting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"not null;uniqueIndex:idx_waiting_member_detail,priority:1" json:"member_id"`
	DetailID  uint      `gorm:"not null;uniqueIndex:idx_waiting_member_detail,priority:2;index:idx_waiting_detail_created,priority:1" json:"detail_id"`
	CreatedAt time.Time `gorm:"not null;index:idx_waiting_detail_created,priority:2" json:"created_at"`

	// QueuePosition is the 1-based place on the detail's queue. Only filled
	// by WaitingRepository.FindByMemberID.
	QueuePosition int64 `gorm:"column:queue_position;->;-:migration" json:"-"`

	Member *Member            `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Detail *ReservationDetail `gorm:"foreignKey:DetailID" json:"detail,omitempty"`
}

func (w *ReservationWaiting) Status() ReservationStatus {
	return StatusWaiting
}

// SameAs compares by id once both sides are persisted, and by
// (member, detail) otherwise.
func (w *ReservationWaiting) SameAs(o *ReservationWaiting) bool {
	if w == nil || o == nil {
		return false
	}
	if w.ID != 0 && o.ID != 0 {
		return w.ID == o.ID
	}
	if w.MemberID != o.MemberID {
		return false
	}
	if w.DetailID != 0 && w.DetailID == o.DetailID {
		return true
	}
	return w.Detail.SameSlot(o.Detail)
}

// ToReservation builds the confirmed reservation this waiting turns into.
func (w *ReservationWaiting) ToReservation() *Reservation {
	return &Reservation{
		MemberID: w.MemberID,
		DetailID: w.DetailID,
		Member:   w.Member,
		Detail:   w.Detail,
	}
}
