package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/packwise/storefront/internal/models"
	"github.com/packwise/storefront/internal/service"
)

// Notification mirrors the storefront's transient message bar: a
// translation key, a severity and optional template params.
type Notification struct {
	Key    string         `json:"key"`
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

func notify(key, typ string, params map[string]any) Notification {
	return Notification{Key: key, Type: typ, Params: params}
}

// respondError maps the service error taxonomy onto HTTP statuses and
// notification keys. Everything unrecognized is a 500.
func respondError(c echo.Context, err error) error {
	var (
		status int
		key    string
	)
	switch {
	case errors.Is(err, service.ErrUnavailable):
		status, key = http.StatusConflict, "productUnavailableStock"
	case errors.Is(err, service.ErrRateLimited):
		status, key = http.StatusTooManyRequests, "tooManyAttempts"
	case errors.Is(err, service.ErrWeakPassword):
		status, key = http.StatusBadRequest, "passwordRequirements"
	case errors.Is(err, service.ErrDuplicateEmail):
		status, key = http.StatusConflict, "emailInUse"
	case errors.Is(err, service.ErrAuthenticationFailed):
		status, key = http.StatusUnauthorized, "loginFailed"
	case errors.Is(err, service.ErrEmptyCart):
		status, key = http.StatusBadRequest, "cartEmpty"
	case errors.Is(err, service.ErrInvalidInput):
		status, key = http.StatusBadRequest, "invalidInput"
	case errors.Is(err, service.ErrNotFound):
		status, key = http.StatusNotFound, "notFound"
	default:
		status, key = http.StatusInternalServerError, "internalError"
	}

	return c.JSON(status, echo.Map{
		"error":        err.Error(),
		"notification": notify(key, "error", nil),
	})
}

func language(c echo.Context) string {
	if lang := c.QueryParam("lang"); lang != "" {
		return lang
	}
	return models.DefaultLanguage
}
