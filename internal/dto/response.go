package dto

import (
	"time"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"github.com/Eursukkul/roomescape-service/internal/service"
)

type ThemeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

type TimeResponse struct {
	ID      uint   `json:"id"`
	StartAt string `json:"start_at"`
}

type ReservationResponse struct {
	ID         uint                     `json:"id"`
	MemberName string                   `json:"name"`
	Date       string                   `json:"date"`
	Time       TimeResponse             `json:"time"`
	Theme      ThemeResponse            `json:"theme"`
	Status     models.ReservationStatus `json:"status"`
}

type WaitingResponse struct {
	ID         uint                     `json:"id"`
	MemberName string                   `json:"name"`
	Date       string                   `json:"date"`
	Time       TimeResponse             `json:"time"`
	Theme      ThemeResponse            `json:"theme"`
	Status     models.ReservationStatus `json:"status"`
	CreatedAt  time.Time                `json:"created_at"`
}

type MyReservationResponse struct {
	ID     uint                     `json:"id"`
	Theme  string                   `json:"theme"`
	Date   string                   `json:"date"`
	Time   string                   `json:"time"`
	Status models.ReservationStatus `json:"status"`
	Rank   int64                    `json:"rank,omitempty"`
}

type TimeAvailabilityResponse struct {
	TimeID        uint   `json:"time_id"`
	StartAt       string `json:"start_at"`
	AlreadyBooked bool   `json:"already_booked"`
}

type ThemeRankingResponse struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Thumbnail        string `json:"thumbnail"`
	ReservationCount int64  `json:"reservation_count"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToThemeResponse(t *models.Theme) ThemeResponse {
	if t == nil {
		return ThemeResponse{}
	}
	return ThemeResponse{ID: t.ID, Name: t.Name, Description: t.Description, Thumbnail: t.Thumbnail}
}

func ToTimeResponse(t *models.Time) TimeResponse {
	if t == nil {
		return TimeResponse{}
	}
	return TimeResponse{ID: t.ID, StartAt: t.StartAt}
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	resp := ReservationResponse{ID: r.ID, Status: r.Status()}
	if r.Member != nil {
		resp.MemberName = r.Member.Name
	}
	if d := r.Detail; d != nil {
		resp.Date = d.Date.Format(models.DateLayout)
		resp.Time = ToTimeResponse(d.Time)
		resp.Theme = ToThemeResponse(d.Theme)
	}
	return resp
}

func ToWaitingResponse(w *models.ReservationWaiting) WaitingResponse {
	resp := WaitingResponse{ID: w.ID, Status: w.Status(), CreatedAt: w.CreatedAt}
	if w.Member != nil {
		resp.MemberName = w.Member.Name
	}
	if d := w.Detail; d != nil {
		resp.Date = d.Date.Format(models.DateLayout)
		resp.Time = ToTimeResponse(d.Time)
		resp.Theme = ToThemeResponse(d.Theme)
	}
	return resp
}

func ToMyReservationResponse(m service.MemberReservation) MyReservationResponse {
	return MyReservationResponse{
		ID:     m.ID,
		Theme:  m.Theme,
		Date:   m.Date.Format(models.DateLayout),
		Time:   m.StartAt,
		Status: m.Status,
		Rank:   m.Rank,
	}
}

func ToTimeAvailabilityResponse(a service.TimeAvailability) TimeAvailabilityResponse {
	return TimeAvailabilityResponse{TimeID: a.Time.ID, StartAt: a.Time.StartAt, AlreadyBooked: a.Booked}
}

func ToThemeRankingResponse(r models.ThemeRanking) ThemeRankingResponse {
	return ThemeRankingResponse{
		ID:               r.ThemeID,
		Name:             r.Name,
		Description:      r.Description,
		Thumbnail:        r.Thumbnail,
		ReservationCount: r.ReservationCount,
	}
}
