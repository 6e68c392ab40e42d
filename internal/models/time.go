package models

import "time"

// Time is a bookable time of day, independent of the date.
type Time struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StartAt   string    `gorm:"type:varchar(5);not null" json:"start_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
