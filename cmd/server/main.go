package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/packwise/storefront/internal/config"
	"github.com/packwise/storefront/internal/es"
	"github.com/packwise/storefront/internal/handlers"
	"github.com/packwise/storefront/internal/logging"
	authmw "github.com/packwise/storefront/internal/middleware/auth"
	"github.com/packwise/storefront/internal/mykafka"
	"github.com/packwise/storefront/internal/security"
	"github.com/packwise/storefront/internal/seed"
	"github.com/packwise/storefront/internal/service"
	"github.com/packwise/storefront/internal/service/token"
	httpserver "github.com/packwise/storefront/internal/transport/http"
)

const productIndex = "product"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	tokens := &token.TokenService{Secret: []byte(configuration.JWT_SECRET)}
	limiter := security.NewRateLimiter()

	authService := &service.AuthService{DB: db, Limiter: limiter, Producer: producer}
	cartService := &service.CartService{DB: db, Producer: producer}
	orderService := &service.OrderService{DB: db, Producer: producer}
	catalogService := &service.CatalogService{DB: db, Producer: producer, Index: productIndex}

	searchHandler := &handlers.SearchHandler{Index: productIndex}
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Printf("elasticsearch unavailable: %v", err)
		} else {
			catalogService.ES = client
			searchHandler.ES = client
		}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		Session:        &authmw.Middleware{Tokens: tokens},
		AuthHandler:    &handlers.AuthHandler{Auth: authService, Tokens: tokens},
		CartHandler:    &handlers.CartHandler{Cart: cartService},
		OrderHandler:   &handlers.OrderHandler{Orders: orderService},
		ProductHandler: &handlers.ProductHandler{Catalog: catalogService},
		AdminHandler:   &handlers.AdminHandler{Catalog: catalogService, Auth: authService, Orders: orderService},
		SearchHandler:  searchHandler,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
