package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/packwise/storefront/internal/service"
	"github.com/packwise/storefront/internal/util"
)

// AdminHandler backs the stock-management and back-office screens.
type AdminHandler struct {
	Catalog *service.CatalogService
	Auth    *service.AuthService
	Orders  *service.OrderService
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	items, total, err := h.Catalog.ListProducts(c.Request().Context(), offset, limit, false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items, "total": total})
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.Catalog.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"product":      product,
		"notification": notify("productAddedSuccess", "success", nil),
	})
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.Catalog.UpdateProduct(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"product":      product,
		"notification": notify("productUpdatedSuccess", "success", nil),
	})
}

func (h *AdminHandler) SetStock(c echo.Context) error {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.Catalog.SetStock(c.Request().Context(), c.Param("id"), req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"product":      product,
		"notification": notify("stockUpdatedSuccess", "success", nil),
	})
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.Catalog.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notification": notify("productDeletedSuccess", "success", nil),
	})
}

func (h *AdminHandler) StockView(c echo.Context) error {
	q := service.StockViewQuery{
		Search:      c.QueryParam("q"),
		CategoryKey: c.QueryParam("category"),
		StockFilter: c.QueryParam("stock"),
		SortBy:      c.QueryParam("sort"),
		SortOrder:   c.QueryParam("order"),
		Lang:        language(c),
	}

	products, err := h.Catalog.StockView(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *AdminHandler) StockSummary(c echo.Context) error {
	summary, err := h.Catalog.Summary(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *AdminHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.Auth.ListAccounts(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, accounts)
}

func (h *AdminHandler) UpdateAccount(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		CompanyName string `json:"companyName"`
		TaxNumber   string `json:"taxNumber"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.Auth.UpdateProfile(c.Request().Context(), c.Param("id"), req.Name, req.CompanyName, req.TaxNumber)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"account":      account,
		"notification": notify("userUpdatedSuccess", "success", nil),
	})
}

func (h *AdminHandler) DeleteAccount(c echo.Context) error {
	if err := h.Auth.DeleteAccount(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notification": notify("userDeletedSuccess", "success", nil),
	})
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders, err := h.Orders.ListOrders(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}
