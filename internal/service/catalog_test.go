package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/packwise/storefront/internal/models"
)

func seedStockFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()

	products := []models.Product{
		{ID: "box-1", SerialNumber: "PKWS-001", SKU: "BX-S", Name: models.LocalizedText{"en": "Small box", "sk": "Mala krabica"},
			CategoryKey: "boxes", Price: 1.20, Quantity: 50, MinStock: 10, IsActive: true},
		{ID: "box-2", SerialNumber: "PKWS-002", SKU: "BX-L", Name: models.LocalizedText{"en": "Large box"},
			CategoryKey: "boxes", Price: 2.40, Quantity: 8, MinStock: 10, IsActive: true},
		{ID: "tape-1", SerialNumber: "PKWS-003", SKU: "TP-C", Name: models.LocalizedText{"en": "Clear tape"},
			CategoryKey: "tapes", Price: 0.90, Quantity: 0, MinStock: 5, IsActive: true},
		{ID: "wrap-1", SerialNumber: "PKWS-004", SKU: "WR-B", Name: models.LocalizedText{"en": "Bubble wrap"},
			CategoryKey: "fillers", Price: 6.00, Quantity: 30, MinStock: 5, IsActive: false},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
}

func TestCreateProduct(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := &CatalogService{DB: db}

	product, err := svc.CreateProduct(context.Background(), ProductInput{
		SerialNumber: "PKWS-100",
		SKU:          "BX-M",
		Name:         models.LocalizedText{"en": "Medium box"},
		CategoryKey:  "boxes",
		Price:        1.80,
		Quantity:     25,
		MinStock:     5,
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.Contains(t, product.ID, "prod-")
	assert.Contains(t, product.LabelCode, "GRSM-")

	got, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Medium box", got.Name.Resolve("en"))
	assert.Equal(t, 25, got.Quantity)
}

func TestCreateProduct_Validation(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	svc := &CatalogService{DB: db}

	_, err := svc.CreateProduct(context.Background(), ProductInput{Price: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(context.Background(), ProductInput{
		Name: models.LocalizedText{"en": "X"}, Price: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(context.Background(), ProductInput{
		Name: models.LocalizedText{"en": "X"}, Quantity: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProduct(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	seedProduct(t, db, "p1", 10, 4.50)
	svc := &CatalogService{DB: db}

	updated, err := svc.UpdateProduct(context.Background(), "p1", ProductInput{
		SerialNumber: "SN-p1",
		Name:         models.LocalizedText{"en": "Renamed"},
		Price:        5.00,
		Quantity:     12,
		IsActive:     false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name.Resolve("en"))
	assert.Equal(t, 12, updated.Quantity)
	assert.False(t, updated.IsActive)

	_, err = svc.UpdateProduct(context.Background(), "missing", ProductInput{
		Name: models.LocalizedText{"en": "X"},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetStock(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	seedProduct(t, db, "p1", 10, 4.50)
	svc := &CatalogService{DB: db}

	product, err := svc.SetStock(context.Background(), "p1", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, product.Quantity)

	_, err = svc.SetStock(context.Background(), "p1", -1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetStock(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	seedProduct(t, db, "p1", 10, 4.50)
	svc := &CatalogService{DB: db}

	require.NoError(t, svc.DeleteProduct(context.Background(), "p1"))
	_, err := svc.GetProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeleteProduct(context.Background(), "p1"), "deleting twice is a no-op")
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	seedStockFixtures(t, db)
	svc := &CatalogService{DB: db}

	all, total, err := svc.ListProducts(context.Background(), 0, 10, false)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, all, 4)

	active, total, err := svc.ListProducts(context.Background(), 0, 10, true)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, p := range active {
		assert.True(t, p.IsActive)
	}

	page, total, err := svc.ListProducts(context.Background(), 2, 2, false)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total, "total counts the whole result set, not the page")
	assert.Len(t, page, 2)
}

func TestStockView_Filters(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	seedStockFixtures(t, db)
	svc := &CatalogService{DB: db}

	ids := func(products []models.Product) []string {
		out := make([]string, 0, len(products))
		for _, p := range products {
			out = append(out, p.ID)
		}
		return out
	}

	tests := []struct {
		name  string
		query StockViewQuery
		want  []string
	}{
		{name: "no filters sorts by name", query: StockViewQuery{}, want: []string{"wrap-1", "tape-1", "box-2", "box-1"}},
		{name: "search by name", query: StockViewQuery{Search: "box"}, want: []string{"box-2", "box-1"}},
		{name: "search by serial", query: StockViewQuery{Search: "pkws-003"}, want: []string{"tape-1"}},
		{name: "search by sku", query: StockViewQuery{Search: "wr-b"}, want: []string{"wrap-1"}},
		{name: "search in requested language", query: StockViewQuery{Search: "krabica", Lang: "sk"}, want: []string{"box-1"}},
		{name: "category", query: StockViewQuery{CategoryKey: "tapes"}, want: []string{"tape-1"}},
		{name: "category all is a no-op", query: StockViewQuery{CategoryKey: "all"}, want: []string{"wrap-1", "tape-1", "box-2", "box-1"}},
		{name: "low stock", query: StockViewQuery{StockFilter: "low"}, want: []string{"box-2"}},
		{name: "out of stock", query: StockViewQuery{StockFilter: "out"}, want: []string{"tape-1"}},
		{name: "normal stock", query: StockViewQuery{StockFilter: "normal"}, want: []string{"wrap-1", "box-1"}},
		{name: "sort by stock descending", query: StockViewQuery{SortBy: "stock", SortOrder: "desc"}, want: []string{"box-1", "wrap-1", "box-2", "tape-1"}},
		{name: "sort by price", query: StockViewQuery{SortBy: "price"}, want: []string{"tape-1", "box-1", "box-2", "wrap-1"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.StockView(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestStockSummary(t *testing.T) {
	t.Parallel()

	db := testDB(t)
	seedStockFixtures(t, db)
	svc := &CatalogService{DB: db}

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, sum.TotalProducts)
	assert.Equal(t, 1, sum.LowStockCount)
	assert.Equal(t, 1, sum.OutOfStock)
	// 50*1.20 + 8*2.40 + 0*0.90 + 30*6.00
	assert.InDelta(t, 259.20, sum.TotalValue, 0.0001)
}
