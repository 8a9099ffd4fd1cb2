package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/packwise/storefront/internal/models"
	"github.com/packwise/storefront/internal/mykafka"
)

type CartService struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

// StockWarning accompanies a silently clamped quantity. Available carries
// whatever the operation reports to the user: remaining headroom for
// add-to-cart, full stock for quantity updates.
type StockWarning struct {
	ProductID   string               `json:"productId"`
	ProductName models.LocalizedText `json:"productName"`
	Available   int                  `json:"availableQty"`
}

type CartMutation struct {
	Line    *models.CartLine `json:"line,omitempty"`
	Warning *StockWarning    `json:"warning,omitempty"`
}

// AddToCart merges quantity of the product into the active cart. The
// product must be active and have at least the requested quantity in stock;
// the check uses the requested quantity alone, not the cart's cumulative
// quantity. When the merged quantity would exceed stock the line is clamped
// to total stock and the warning reports the remaining headroom. If an
// account is logged in the same merge is replayed against its persisted
// cart so both stay identical.
func (s *CartService) AddToCart(ctx context.Context, sessionID, accountID, productID string, quantity int) (*CartMutation, error) {
	if quantity < 1 {
		quantity = 1
	}

	var result *CartMutation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %s", ErrNotFound, productID)
			}
			return err
		}

		if !product.IsActive || product.Quantity < quantity {
			return fmt.Errorf("%w: %s", ErrUnavailable, productID)
		}

		var err error
		result, err = mergeLine(tx, sessionID, &product, quantity)
		if err != nil {
			return err
		}

		if accountID != "" {
			if _, err := mergeLine(tx, accountID, &product, quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, sessionID, map[string]any{
		"type":      "cart_line_added",
		"sessionID": sessionID,
		"productID": productID,
		"quantity":  result.Line.Quantity,
	})
	return result, nil
}

func mergeLine(tx *gorm.DB, ownerID string, product *models.Product, quantity int) (*CartMutation, error) {
	var line models.CartLine
	err := tx.Where("owner_id = ? AND product_id = ?", ownerID, product.ID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		line = models.CartLine{
			OwnerID:   ownerID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Images:    product.Images,
			Quantity:  quantity,
		}
		if err := tx.Create(&line).Error; err != nil {
			return nil, err
		}
		return &CartMutation{Line: &line}, nil
	}
	if err != nil {
		return nil, err
	}

	var warning *StockWarning
	newQuantity := line.Quantity + quantity
	if newQuantity > product.Quantity {
		// Clamp target is total stock; the reported availability is the
		// headroom left before the merge. The two differ whenever the line
		// already held items.
		warning = &StockWarning{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   product.Quantity - line.Quantity,
		}
		line.Quantity = product.Quantity
	} else {
		line.Quantity = newQuantity
	}
	if err := tx.Save(&line).Error; err != nil {
		return nil, err
	}
	return &CartMutation{Line: &line, Warning: warning}, nil
}

// UpdateQuantity sets the cart line for productID to the requested
// quantity clamped to [1, stock]. A request above stock keeps the clamp
// and reports the full available stock. Unknown products are a silent
// no-op. Lines left at or below zero are filtered out afterwards.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, accountID, productID string, requested int) (*CartMutation, error) {
	var result *CartMutation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		newQuantity := requested
		if newQuantity > product.Quantity {
			newQuantity = product.Quantity
		}
		if newQuantity < 1 {
			newQuantity = 1
		}

		var warning *StockWarning
		if requested > product.Quantity {
			warning = &StockWarning{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Quantity,
			}
		}

		line, err := applyQuantity(tx, sessionID, productID, newQuantity)
		if err != nil {
			return err
		}
		if accountID != "" {
			if _, err := applyQuantity(tx, accountID, productID, newQuantity); err != nil {
				return err
			}
		}
		result = &CartMutation{Line: line, Warning: warning}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result != nil {
		s.publish(ctx, sessionID, map[string]any{
			"type":      "cart_quantity_updated",
			"sessionID": sessionID,
			"productID": productID,
			"requested": requested,
		})
	}
	return result, nil
}

func applyQuantity(tx *gorm.DB, ownerID, productID string, quantity int) (*models.CartLine, error) {
	var line models.CartLine
	err := tx.Where("owner_id = ? AND product_id = ?", ownerID, productID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		line = models.CartLine{}
	} else if err != nil {
		return nil, err
	} else {
		line.Quantity = quantity
		if err := tx.Save(&line).Error; err != nil {
			return nil, err
		}
	}

	// Contractual filter: drop any line that ends up at zero or below.
	if err := tx.Where("owner_id = ? AND quantity <= 0", ownerID).Delete(&models.CartLine{}).Error; err != nil {
		return nil, err
	}
	if line.ID == 0 {
		return nil, nil
	}
	return &line, nil
}

// Remove deletes the line for productID from the active cart and from the
// logged-in account's persisted cart. Removing an absent line is a no-op.
func (s *CartService) Remove(ctx context.Context, sessionID, accountID, productID string) error {
	owners := []string{sessionID}
	if accountID != "" {
		owners = append(owners, accountID)
	}
	if err := s.DB.Where("owner_id IN ? AND product_id = ?", owners, productID).
		Delete(&models.CartLine{}).Error; err != nil {
		return err
	}

	s.publish(ctx, sessionID, map[string]any{
		"type":      "cart_line_removed",
		"sessionID": sessionID,
		"productID": productID,
	})
	return nil
}

// GetCart returns the owner's lines in insertion order.
func (s *CartService) GetCart(ctx context.Context, ownerID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := s.DB.Where("owner_id = ?", ownerID).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func CartSubtotal(lines []models.CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

func CartItemCount(lines []models.CartLine) int {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

func (s *CartService) publish(ctx context.Context, key string, event map[string]any) {
	publishEvent(ctx, s.Producer, mykafka.TopicCartEvents, key, event)
}
