package service

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/packwise/storefront/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every caller on the same in-memory store.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.UserAccount{},
		&models.CartLine{},
		&models.DeliveryOption{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id string, stock int, price float64) *models.Product {
	t.Helper()

	product := models.Product{
		ID:           id,
		SerialNumber: "SN-" + id,
		SKU:          "SKU-" + id,
		Name:         models.LocalizedText{"en": "Product " + id},
		CategoryKey:  "boxes",
		Price:        price,
		Quantity:     stock,
		MinStock:     5,
		MaxStock:     100,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func cartOf(t *testing.T, db *gorm.DB, ownerID string) []models.CartLine {
	t.Helper()

	var lines []models.CartLine
	require.NoError(t, db.Where("owner_id = ?", ownerID).Order("id ASC").Find(&lines).Error)
	return lines
}

func seedDeliveryOption(t *testing.T, db *gorm.DB, id string, cost float64) *models.DeliveryOption {
	t.Helper()

	option := models.DeliveryOption{ID: id, NameKey: fmt.Sprintf("delivery.%s", id), Cost: cost, Duration: "3-5 days"}
	require.NoError(t, db.Create(&option).Error)
	return &option
}
