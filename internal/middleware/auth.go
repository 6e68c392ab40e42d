package middleware

import (
	"net/http"
	"strings"

	"github.com/Eursukkul/roomescape-service/internal/auth"
	"github.com/labstack/echo/v4"
)

const (
	TokenCookie    = "token"
	MemberIDKey    = "member_id"
	MemberClaimKey = "member_claims"
)

// MemberAuth requires a member token, from the Authorization header or the
// token cookie, and stores the member id in the context.
func MemberAuth(issuer *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}

			claims, err := issuer.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			memberID, err := claims.MemberID()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(MemberIDKey, memberID)
			c.Set(MemberClaimKey, claims)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// MemberID returns the id MemberAuth stored, or false when absent.
func MemberID(c echo.Context) (uint, bool) {
	id, ok := c.Get(MemberIDKey).(uint)
	return id, ok && id != 0
}
