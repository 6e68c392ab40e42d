package models

import "time"

type Theme struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ThemeRanking is a theme with its reservation count inside a ranking window.
type ThemeRanking struct {
	ThemeID          uint   `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Thumbnail        string `json:"thumbnail"`
	ReservationCount int64  `json:"reservation_count"`
}
