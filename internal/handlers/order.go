package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/packwise/storefront/internal/middleware/auth"
	"github.com/packwise/storefront/internal/service"
)

type OrderHandler struct {
	Orders *service.OrderService
}

// Checkout places the order for the session's active cart. The route is
// gated on a logged-in session; the engine itself does not re-check.
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req service.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.Orders.PlaceOrder(c.Request().Context(), auth.SessionID(c), auth.AccountID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"order":        order,
		"notification": notify("orderPlacedSuccessfully", "success", nil),
	})
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	orders, err := h.Orders.AccountOrders(c.Request().Context(), auth.AccountID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.Orders.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if order.UserID != "" && order.UserID != auth.AccountID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "not your order")
	}
	return c.JSON(http.StatusOK, order)
}
