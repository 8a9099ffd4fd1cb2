package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/packwise/storefront/internal/logging"
	"github.com/packwise/storefront/internal/models"
	"github.com/packwise/storefront/internal/mykafka"
	"github.com/packwise/storefront/internal/search"
	"github.com/packwise/storefront/internal/security"
)

type CatalogService struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &product, nil
}

// ListProducts pages through the catalog. The storefront passes
// activeOnly; the back office sees everything.
func (s *CatalogService) ListProducts(ctx context.Context, offset, limit int, activeOnly bool) ([]models.Product, int64, error) {
	q := s.DB.Model(&models.Product{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Product
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

type ProductInput struct {
	SerialNumber string               `json:"serialNumber"`
	SKU          string               `json:"sku"`
	Name         models.LocalizedText `json:"name"`
	Description  models.LocalizedText `json:"description"`
	CategoryKey  string               `json:"categoryKey"`
	Dimensions   string               `json:"dimensions"`
	Weight       string               `json:"weight"`
	Material     string               `json:"material"`
	Supplier     string               `json:"supplier"`
	SupplierCode string               `json:"supplierCode"`
	Price        float64              `json:"price"`
	Quantity     int                  `json:"quantity"`
	MinStock     int                  `json:"minStockLevel"`
	MaxStock     int                  `json:"maxStockLevel"`
	IsActive     bool                 `json:"isActive"`
	Images       models.StringList    `json:"images"`
}

func (in ProductInput) validate() error {
	if len(in.Name) == 0 || in.Name.Resolve(models.DefaultLanguage) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0", ErrInvalidInput)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := models.Product{
		ID:           security.GenerateID("prod-", 8),
		LabelCode:    security.GenerateID("GRSM-", 5),
		SerialNumber: in.SerialNumber,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		CategoryKey:  in.CategoryKey,
		Dimensions:   in.Dimensions,
		Weight:       in.Weight,
		Material:     in.Material,
		Supplier:     in.Supplier,
		SupplierCode: in.SupplierCode,
		Price:        in.Price,
		Quantity:     in.Quantity,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		IsActive:     in.IsActive,
		Images:       in.Images,
	}
	if err := s.DB.Create(&product).Error; err != nil {
		return nil, err
	}

	s.index(ctx, &product)
	s.publish(ctx, product.ID, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
	})
	return &product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.SerialNumber = in.SerialNumber
	product.SKU = in.SKU
	product.Name = in.Name
	product.Description = in.Description
	product.CategoryKey = in.CategoryKey
	product.Dimensions = in.Dimensions
	product.Weight = in.Weight
	product.Material = in.Material
	product.Supplier = in.Supplier
	product.SupplierCode = in.SupplierCode
	product.Price = in.Price
	product.Quantity = in.Quantity
	product.MinStock = in.MinStock
	product.MaxStock = in.MaxStock
	product.IsActive = in.IsActive
	product.Images = in.Images
	if err := s.DB.Save(product).Error; err != nil {
		return nil, err
	}

	s.index(ctx, product)
	s.publish(ctx, product.ID, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
	})
	return product, nil
}

// SetStock is the back office's direct stock edit.
func (s *CatalogService) SetStock(ctx context.Context, id string, quantity int) (*models.Product, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be >= 0", ErrInvalidInput)
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Quantity = quantity
	product.UpdatedAt = time.Now()
	if err := s.DB.Save(product).Error; err != nil {
		return nil, err
	}
	s.index(ctx, product)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return err
	}
	if s.ES != nil {
		if err := search.DeleteProduct(ctx, s.ES, s.Index, id); err != nil {
			logging.FromContext(ctx).Error("search delete error", "productID", id, "error", err)
		}
	}
	s.publish(ctx, id, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}

// StockViewQuery mirrors the back office stock screen: free-text search
// over name, serial number and SKU, category and stock-status filters, and
// sortable columns.
type StockViewQuery struct {
	Search      string
	CategoryKey string
	StockFilter string // all, low, out, normal
	SortBy      string // name, stock, price, category
	SortOrder   string // asc, desc
	Lang        string
}

func (s *CatalogService) StockView(ctx context.Context, q StockViewQuery) ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.Find(&products).Error; err != nil {
		return nil, err
	}

	term := strings.ToLower(q.Search)
	filtered := products[:0]
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name.Resolve(q.Lang)), term) &&
			!strings.Contains(strings.ToLower(p.SerialNumber), term) &&
			!strings.Contains(strings.ToLower(p.SKU), term) {
			continue
		}
		if q.CategoryKey != "" && q.CategoryKey != "all" && p.CategoryKey != q.CategoryKey {
			continue
		}
		switch q.StockFilter {
		case "low":
			if !(p.Quantity > 0 && p.Quantity <= p.MinStock) {
				continue
			}
		case "out":
			if p.Quantity != 0 {
				continue
			}
		case "normal":
			if p.Quantity <= p.MinStock {
				continue
			}
		}
		filtered = append(filtered, p)
	}

	desc := q.SortOrder == "desc"
	sort.SliceStable(filtered, func(i, j int) bool {
		var cmp int
		switch q.SortBy {
		case "stock":
			cmp = filtered[i].Quantity - filtered[j].Quantity
		case "price":
			switch {
			case filtered[i].Price < filtered[j].Price:
				cmp = -1
			case filtered[i].Price > filtered[j].Price:
				cmp = 1
			}
		case "category":
			cmp = strings.Compare(filtered[i].CategoryKey, filtered[j].CategoryKey)
		default:
			cmp = strings.Compare(
				strings.ToLower(filtered[i].Name.Resolve(q.Lang)),
				strings.ToLower(filtered[j].Name.Resolve(q.Lang)),
			)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	return filtered, nil
}

type StockSummary struct {
	TotalProducts int     `json:"totalProducts"`
	LowStockCount int     `json:"lowStockCount"`
	OutOfStock    int     `json:"outOfStockCount"`
	TotalValue    float64 `json:"totalStockValue"`
}

func (s *CatalogService) Summary(ctx context.Context) (*StockSummary, error) {
	var products []models.Product
	if err := s.DB.Find(&products).Error; err != nil {
		return nil, err
	}

	sum := &StockSummary{TotalProducts: len(products)}
	for _, p := range products {
		switch {
		case p.Quantity == 0:
			sum.OutOfStock++
		case p.Quantity <= p.MinStock:
			sum.LowStockCount++
		}
		sum.TotalValue += p.Price * float64(p.Quantity)
	}
	return sum, nil
}

func (s *CatalogService) index(ctx context.Context, product *models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, s.Index, product); err != nil {
		// Search lags behind the catalog until the next successful index.
		logging.FromContext(ctx).Error("search index error", "productID", product.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, key string, event map[string]any) {
	publishEvent(ctx, s.Producer, mykafka.TopicProductEvents, key, event)
}
