package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/packwise/storefront/internal/handlers"
	"github.com/packwise/storefront/internal/middleware/auth"
)

type Deps struct {
	Session        *auth.Middleware
	AuthHandler    *handlers.AuthHandler
	CartHandler    *handlers.CartHandler
	OrderHandler   *handlers.OrderHandler
	ProductHandler *handlers.ProductHandler
	AdminHandler   *handlers.AdminHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1", d.Session.EnsureSession)

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)
	v1.GET("/search", d.SearchHandler.Search)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	cart := v1.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:productID", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:productID", d.CartHandler.Remove)

	account := v1.Group("/account", d.Session.RequireLogin)
	account.GET("", d.AuthHandler.Me)
	account.PATCH("", d.AuthHandler.UpdateProfile)
	account.GET("/orders", d.OrderHandler.MyOrders)
	account.GET("/orders/:id", d.OrderHandler.GetOrder)

	checkout := v1.Group("/checkout", d.Session.RequireLogin)
	checkout.POST("", d.OrderHandler.Checkout)

	admin := v1.Group("/admin", d.Session.AdminOnly)
	admin.GET("/products", d.AdminHandler.ListProducts)
	admin.POST("/products", d.AdminHandler.CreateProduct)
	admin.PUT("/products/:id", d.AdminHandler.UpdateProduct)
	admin.PATCH("/products/:id/stock", d.AdminHandler.SetStock)
	admin.DELETE("/products/:id", d.AdminHandler.DeleteProduct)
	admin.GET("/stock", d.AdminHandler.StockView)
	admin.GET("/stock/summary", d.AdminHandler.StockSummary)
	admin.GET("/users", d.AdminHandler.ListAccounts)
	admin.PATCH("/users/:id", d.AdminHandler.UpdateAccount)
	admin.DELETE("/users/:id", d.AdminHandler.DeleteAccount)
	admin.GET("/orders", d.AdminHandler.ListOrders)
}
