package service

import "errors"

// NotFound
var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrThemeNotFound       = errors.New("theme not found")
	ErrTimeNotFound        = errors.New("time not found")
	ErrDetailNotFound      = errors.New("reservation detail not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrWaitingNotFound     = errors.New("waiting not found")
)

// BadRequest
var (
	ErrPastDate           = errors.New("cannot reserve a past date")
	ErrMissingSlot        = errors.New("either detail_id or date, time_id and theme_id are required")
	ErrSlotAvailable      = errors.New("the slot is not reserved yet, reserve it directly")
	ErrInvalidWindow      = errors.New("ranking window start must be before end")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Conflict
var (
	ErrSlotReserved     = errors.New("the slot is already reserved")
	ErrAlreadyReserved  = errors.New("member already holds the reservation for this slot")
	ErrDuplicateWaiting = errors.New("member is already waiting for this slot")
	ErrEmailTaken       = errors.New("email is already registered")
)

// Forbidden
var ErrNotOwner = errors.New("not the owner of this entry")
