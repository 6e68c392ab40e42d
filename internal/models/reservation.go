package models

import "time"

type ReservationStatus string

const (
	StatusReserved ReservationStatus = "예약"
	StatusWaiting  ReservationStatus = "대기"
)

// Reservation is a confirmed booking. At most one exists per detail.
type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"not null;index" json:"member_id"`
	DetailID  uint      `gorm:"not null;uniqueIndex" json:"detail_id"`
	CreatedAt time.Time `json:"created_at"`

	Member *Member            `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Detail *ReservationDetail `gorm:"foreignKey:DetailID" json:"detail,omitempty"`
}

func (r *Reservation) Status() ReservationStatus {
	return StatusReserved
}

// SameAs compares by id once both sides are persisted, and by
// (date, time, theme) otherwise.
func (r *Reservation) SameAs(o *Reservation) bool {
	if r == nil || o == nil {
		return false
	}
	if r.ID != 0 && o.ID != 0 {
		return r.ID == o.ID
	}
	if r.DetailID != 0 && r.DetailID == o.DetailID {
		return true
	}
	return r.Detail.SameSlot(o.Detail)
}
