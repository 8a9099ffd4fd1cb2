package auth

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/packwise/storefront/internal/service/token"
)

const (
	ctxSessionID = "sessionID"
	ctxAccountID = "accountID"
	ctxRole      = "role"
)

type Middleware struct {
	Tokens *token.TokenService
}

// EnsureSession guarantees every request carries a session: a valid cookie
// is decoded into the request context, anything else gets a fresh guest
// session issued on the spot.
func (m *Middleware) EnsureSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if cookie, err := c.Cookie(token.CookieName); err == nil {
			if claims, err := m.Tokens.Parse(cookie.Value); err == nil {
				c.Set(ctxSessionID, claims.SID)
				c.Set(ctxAccountID, claims.Subject)
				c.Set(ctxRole, claims.Role)
				return next(c)
			}
		}

		sid := uuid.NewString()
		exp := time.Now().Add(token.SessionTTL)
		signed, err := m.Tokens.Issue("", "", sid, exp)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not start session")
		}
		c.SetCookie(token.CreateCookie(token.CookieName, signed, "/", exp))
		c.Set(ctxSessionID, sid)
		c.Set(ctxAccountID, "")
		c.Set(ctxRole, "")
		return next(c)
	}
}

func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if AccountID(c) == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		return next(c)
	}
}

func (m *Middleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if AccountID(c) == "" || Role(c) != token.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		return next(c)
	}
}

func SessionID(c echo.Context) string {
	if v, ok := c.Get(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

func AccountID(c echo.Context) string {
	if v, ok := c.Get(ctxAccountID).(string); ok {
		return v
	}
	return ""
}

func Role(c echo.Context) string {
	if v, ok := c.Get(ctxRole).(string); ok {
		return v
	}
	return ""
}
