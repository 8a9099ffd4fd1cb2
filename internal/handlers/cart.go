package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/packwise/storefront/internal/middleware/auth"
	"github.com/packwise/storefront/internal/service"
)

type CartHandler struct {
	Cart *service.CartService
}

func (h *CartHandler) GetCart(c echo.Context) error {
	lines, err := h.Cart.GetCart(c.Request().Context(), auth.SessionID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items":     lines,
		"subtotal":  service.CartSubtotal(lines),
		"itemCount": service.CartItemCount(lines),
	})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	result, err := h.Cart.AddToCart(c.Request().Context(), auth.SessionID(c), auth.AccountID(c), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}

	lang := language(c)
	notifications := []Notification{}
	if result.Warning != nil {
		notifications = append(notifications, notify("insufficientStockWarning", "warning", map[string]any{
			"productName":  result.Warning.ProductName.Resolve(lang),
			"availableQty": result.Warning.Available,
		}))
	}
	// The success notice fires even when the quantity was clamped.
	notifications = append(notifications, notify("addedToCart", "success", map[string]any{
		"productName": result.Line.Name.Resolve(lang),
	}))

	return c.JSON(http.StatusOK, echo.Map{
		"line":          result.Line,
		"notifications": notifications,
	})
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	productID := c.Param("productID")
	result, err := h.Cart.UpdateQuantity(c.Request().Context(), auth.SessionID(c), auth.AccountID(c), productID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	if result == nil {
		// Unknown product: silent no-op, matching the storefront.
		return c.NoContent(http.StatusNoContent)
	}

	lang := language(c)
	notifications := []Notification{}
	if result.Warning != nil {
		notifications = append(notifications, notify("insufficientStockWarning", "warning", map[string]any{
			"productName":  result.Warning.ProductName.Resolve(lang),
			"availableQty": result.Warning.Available,
		}))
	}
	notifications = append(notifications, notify("cartUpdated", "success", nil))

	return c.JSON(http.StatusOK, echo.Map{
		"line":          result.Line,
		"notifications": notifications,
	})
}

func (h *CartHandler) Remove(c echo.Context) error {
	productID := c.Param("productID")
	if err := h.Cart.Remove(c.Request().Context(), auth.SessionID(c), auth.AccountID(c), productID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notification": notify("itemRemovedCart", "info", nil),
	})
}
