package handler

import (
	"fmt"
	"net/http"

	"github.com/Eursukkul/roomescape-service/internal/dto"
	"github.com/Eursukkul/roomescape-service/internal/middleware"
	"github.com/Eursukkul/roomescape-service/internal/models"
	"github.com/Eursukkul/roomescape-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	reservations service.ReservationService
	waitings     service.WaitingService
}

func NewReservationHandler(reservations service.ReservationService, waitings service.WaitingService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, waitings: waitings}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo, requireMember echo.MiddlewareFunc) {
	g := e.Group("/reservations")
	g.GET("", h.ListReservations)
	g.POST("", h.CreateReservation)
	g.DELETE("/:id", h.CancelReservation)
	g.GET("/mine", h.ListMine, requireMember)
	g.GET("/times/:themeId", h.TimeAvailability)

	g.POST("/waitings", h.CreateWaiting, requireMember)
	g.DELETE("/waitings/:id", h.CancelWaiting, requireMember)
}

func (h *ReservationHandler) ListReservations(c echo.Context) error {
	reservations, err := h.reservations.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ReservationResponse, len(reservations))
	for i := range reservations {
		resp[i] = dto.ToReservationResponse(&reservations[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slot, err := slotRequest(req.MemberID, req.DetailID, req.Date, req.TimeID, req.ThemeID)
	if err != nil {
		return err
	}

	reservation, err := h.reservations.Create(c.Request().Context(), slot)
	if err != nil {
		return toHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/reservations/%d", reservation.ID))
	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.reservations.Cancel(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) ListMine(c echo.Context) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	mine, err := h.reservations.ListMine(c.Request().Context(), memberID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.MyReservationResponse, len(mine))
	for i, m := range mine {
		resp[i] = dto.ToMyReservationResponse(m)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) TimeAvailability(c echo.Context) error {
	themeID, err := parseID(c, "themeId")
	if err != nil {
		return err
	}
	date, err := models.ParseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	slots, err := h.reservations.TimeAvailability(c.Request().Context(), themeID, date)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.TimeAvailabilityResponse, len(slots))
	for i, s := range slots {
		resp[i] = dto.ToTimeAvailabilityResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) CreateWaiting(c echo.Context) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	var req dto.CreateWaitingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slot, err := slotRequest(memberID, req.DetailID, req.Date, req.TimeID, req.ThemeID)
	if err != nil {
		return err
	}

	waiting, err := h.waitings.Create(c.Request().Context(), slot)
	if err != nil {
		return toHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/reservations/waitings/%d", waiting.ID))
	return c.JSON(http.StatusCreated, dto.ToWaitingResponse(waiting))
}

func (h *ReservationHandler) CancelWaiting(c echo.Context) error {
	memberID, ok := middleware.MemberID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.waitings.Cancel(c.Request().Context(), id, memberID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func slotRequest(memberID, detailID uint, date string, timeID, themeID uint) (service.SlotRequest, error) {
	slot := service.SlotRequest{MemberID: memberID, DetailID: detailID, TimeID: timeID, ThemeID: themeID}
	if detailID != 0 {
		return slot, nil
	}
	if date == "" || timeID == 0 || themeID == 0 {
		return slot, echo.NewHTTPError(http.StatusBadRequest, service.ErrMissingSlot.Error())
	}

	d, err := models.ParseDate(date)
	if err != nil {
		return slot, echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	slot.Date = d
	return slot, nil
}

