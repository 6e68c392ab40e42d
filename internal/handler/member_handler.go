package handler

import (
	"net/http"

	"github.com/Eursukkul/roomescape-service/internal/dto"
	"github.com/Eursukkul/roomescape-service/internal/middleware"
	"github.com/Eursukkul/roomescape-service/internal/service"
	"github.com/labstack/echo/v4"
)

type MemberHandler struct {
	svc service.MemberService
}

func NewMemberHandler(svc service.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

func (h *MemberHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/login", h.Login)
}

func (h *MemberHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, member, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token, Name: member.Name})
}
