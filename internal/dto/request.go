package dto

type CreateReservationRequest struct {
	MemberID uint   `json:"member_id" validate:"required"`
	DetailID uint   `json:"detail_id"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TimeID   uint   `json:"time_id"`
	ThemeID  uint   `json:"theme_id"`
}

// CreateWaitingRequest carries the slot only; the member comes from the token.
type CreateWaitingRequest struct {
	DetailID uint   `json:"detail_id"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TimeID   uint   `json:"time_id"`
	ThemeID  uint   `json:"theme_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
