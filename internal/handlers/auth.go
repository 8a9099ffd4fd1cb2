package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/packwise/storefront/internal/middleware/auth"
	"github.com/packwise/storefront/internal/service"
	"github.com/packwise/storefront/internal/service/token"
)

type AuthHandler struct {
	Auth   *service.AuthService
	Tokens *token.TokenService
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		CompanyName string `json:"companyName"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.Auth.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.CompanyName)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"account":      account,
		"notification": notify("registrationSuccess", "success", nil),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, sessionID, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password, auth.SessionID(c))
	if err != nil {
		return respondError(c, err)
	}

	role := token.RoleUser
	if account.IsAdmin {
		role = token.RoleAdmin
	}

	exp := time.Now().Add(token.SessionTTL)
	signed, err := h.Tokens.Issue(account.ID, role, sessionID, exp)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create session token")
	}
	c.SetCookie(token.CreateCookie(token.CookieName, signed, "/", exp))

	return c.JSON(http.StatusOK, echo.Map{
		"account":      account,
		"is_admin":     account.IsAdmin,
		"notification": notify("loginSuccess", "success", map[string]any{"name": account.Name}),
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Auth.Logout(c.Request().Context(), auth.SessionID(c), auth.AccountID(c)); err != nil {
		return respondError(c, err)
	}

	// Hand the client a fresh guest session; the old one is gone.
	exp := time.Now().Add(token.SessionTTL)
	signed, err := h.Tokens.Issue("", "", uuid.NewString(), exp)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create session token")
	}
	c.SetCookie(token.CreateCookie(token.CookieName, signed, "/", exp))

	return c.JSON(http.StatusOK, echo.Map{
		"notification": notify("logout", "info", nil),
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	account, err := h.Auth.GetAccount(c.Request().Context(), auth.AccountID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, account)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		CompanyName string `json:"companyName"`
		TaxNumber   string `json:"taxNumber"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.Auth.UpdateProfile(c.Request().Context(), auth.AccountID(c), req.Name, req.CompanyName, req.TaxNumber)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"account":      account,
		"notification": notify("userUpdatedSuccess", "success", nil),
	})
}
