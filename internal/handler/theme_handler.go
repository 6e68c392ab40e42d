package handler

import (
	"net/http"

	"github.com/Eursukkul/roomescape-service/internal/dto"
	"github.com/Eursukkul/roomescape-service/internal/models"
	"github.com/Eursukkul/roomescape-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ThemeHandler struct {
	svc service.ThemeService
}

func NewThemeHandler(svc service.ThemeService) *ThemeHandler {
	return &ThemeHandler{svc: svc}
}

func (h *ThemeHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/themes", h.ListThemes)
	e.GET("/themes/rank", h.Ranking)
	e.GET("/times", h.ListTimes)
}

func (h *ThemeHandler) ListThemes(c echo.Context) error {
	themes, err := h.svc.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ThemeResponse, len(themes))
	for i := range themes {
		resp[i] = dto.ToThemeResponse(&themes[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ThemeHandler) ListTimes(c echo.Context) error {
	times, err := h.svc.ListTimes(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.TimeResponse, len(times))
	for i := range times {
		resp[i] = dto.ToTimeResponse(&times[i])
	}
	return c.JSON(http.StatusOK, resp)
}

// Ranking uses the rolling window unless both start and end are given.
func (h *ThemeHandler) Ranking(c echo.Context) error {
	ctx := c.Request().Context()
	start, end := c.QueryParam("start"), c.QueryParam("end")

	var (
		ranking []models.ThemeRanking
		err     error
	)
	switch {
	case start == "" && end == "":
		ranking, err = h.svc.Ranking(ctx)
	case start == "" || end == "":
		return echo.NewHTTPError(http.StatusBadRequest, "start and end must be given together")
	default:
		s, perr := models.ParseDate(start)
		if perr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "start must be YYYY-MM-DD")
		}
		e, perr := models.ParseDate(end)
		if perr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "end must be YYYY-MM-DD")
		}
		ranking, err = h.svc.RankingBetween(ctx, s, e)
	}
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ThemeRankingResponse, len(ranking))
	for i, r := range ranking {
		resp[i] = dto.ToThemeRankingResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}
