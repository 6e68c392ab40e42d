package models

import "time"

const DateLayout = "2006-01-02"

// ReservationDetail is one bookable instance: a theme at a date and time.
type ReservationDetail struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ThemeID   uint      `gorm:"not null;uniqueIndex:idx_detail_slot,priority:1" json:"theme_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_detail_slot,priority:2" json:"date"`
	TimeID    uint      `gorm:"not null;uniqueIndex:idx_detail_slot,priority:3" json:"time_id"`
	CreatedAt time.Time `json:"created_at"`

	Theme *Theme `gorm:"foreignKey:ThemeID" json:"theme,omitempty"`
	Time  *Time  `gorm:"foreignKey:TimeID" json:"time,omitempty"`
}

// SameSlot reports whether both details name the same (theme, date, time).
func (d *ReservationDetail) SameSlot(o *ReservationDetail) bool {
	if d == nil || o == nil {
		return false
	}
	return d.ThemeID == o.ThemeID && d.TimeID == o.TimeID && DateOf(d.Date).Equal(DateOf(o.Date))
}

// InPeriod reports whether the detail's date lies in [start, end).
func (d *ReservationDetail) InPeriod(start, end time.Time) bool {
	date := DateOf(d.Date)
	return !date.Before(DateOf(start)) && date.Before(DateOf(end))
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
