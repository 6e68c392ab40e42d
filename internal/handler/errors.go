package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Eursukkul/roomescape-service/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors onto status codes.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrThemeNotFound),
		errors.Is(err, service.ErrTimeNotFound),
		errors.Is(err, service.ErrDetailNotFound),
		errors.Is(err, service.ErrReservationNotFound),
		errors.Is(err, service.ErrWaitingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPastDate),
		errors.Is(err, service.ErrMissingSlot),
		errors.Is(err, service.ErrSlotAvailable),
		errors.Is(err, service.ErrInvalidWindow),
		errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSlotReserved),
		errors.Is(err, service.ErrAlreadyReserved),
		errors.Is(err, service.ErrDuplicateWaiting),
		errors.Is(err, service.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
