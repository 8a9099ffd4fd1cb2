package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/packwise/storefront/internal/models"
	"github.com/packwise/storefront/internal/mykafka"
	"github.com/packwise/storefront/internal/security"
)

type OrderService struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

type PlaceOrderInput struct {
	Shipping         models.ShippingInfo `json:"shippingInfo"`
	DeliveryOptionID string              `json:"deliveryOptionId"`
	Payment          models.PaymentInfo  `json:"paymentInfo"`
}

// PlaceOrder commits the checkout transaction: it snapshots the active
// cart into an immutable order, appends it to the global ledger and the
// account's history, empties the account's persisted cart, decrements
// stock for every referenced product floored at zero, and clears the
// active cart. Stock is not re-validated at commit time; an over-committed
// order still succeeds with stock floored. All effects run inside one
// database transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionID, accountID string, input PlaceOrderInput) (*models.Order, error) {
	if err := validateShipping(input.Shipping); err != nil {
		return nil, err
	}
	if err := validatePayment(input.Payment); err != nil {
		return nil, err
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var option models.DeliveryOption
		if err := tx.First(&option, "id = ?", input.DeliveryOptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: delivery option", ErrInvalidInput)
			}
			return err
		}

		var lines []models.CartLine
		if err := tx.Where("owner_id = ?", sessionID).Order("id ASC").Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		items := make([]models.OrderItem, 0, len(lines))
		var subtotal float64
		for _, l := range lines {
			subtotal += l.Price * float64(l.Quantity)
			items = append(items, models.OrderItem{
				ProductID: l.ProductID,
				Name:      l.Name,
				Price:     l.Price,
				Quantity:  l.Quantity,
				Images:    l.Images,
			})
		}

		order = models.Order{
			ID:             security.GenerateID("ORD-", 8),
			UserID:         accountID,
			Total:          subtotal + option.Cost,
			ShippingInfo:   input.Shipping,
			DeliveryOption: option,
			PaymentInfo:    maskPayment(input.Payment),
			Status:         models.OrderStatusConfirmed,
			Date:           time.Now(),
			Items:          items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if accountID != "" {
			if err := tx.Where("owner_id = ?", accountID).Delete(&models.CartLine{}).Error; err != nil {
				return err
			}
		}

		for _, l := range lines {
			var product models.Product
			if err := tx.First(&product, "id = ?", l.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			product.Quantity -= l.Quantity
			if product.Quantity < 0 {
				product.Quantity = 0
			}
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
		}

		return tx.Where("owner_id = ?", sessionID).Delete(&models.CartLine{}).Error
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.Producer, mykafka.TopicOrderEvents, order.ID, map[string]any{
		"type":      "order_created",
		"orderID":   order.ID,
		"accountID": accountID,
		"total":     order.Total,
	})
	return &order, nil
}

func validateShipping(info models.ShippingInfo) error {
	required := map[string]string{
		"fullName":   info.FullName,
		"email":      info.Email,
		"address":    info.Address,
		"city":       info.City,
		"postalCode": info.PostalCode,
		"country":    info.Country,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s required", ErrInvalidInput, field)
		}
	}
	if !security.ValidateEmail(info.Email) {
		return fmt.Errorf("%w: email", ErrInvalidInput)
	}
	return nil
}

func validatePayment(info models.PaymentInfo) error {
	if strings.TrimSpace(info.CardholderName) == "" {
		return fmt.Errorf("%w: cardholder name required", ErrInvalidInput)
	}
	if !security.ValidateCreditCard(info.CardNumber) {
		return fmt.Errorf("%w: card number", ErrInvalidInput)
	}
	if !security.ValidateExpiryDate(info.ExpiryDate) {
		return fmt.Errorf("%w: expiry date", ErrInvalidInput)
	}
	if !security.ValidateCVV(info.CVV, info.CardType) {
		return fmt.Errorf("%w: cvv", ErrInvalidInput)
	}
	return nil
}

// maskPayment keeps only what the confirmation view needs; the stored
// snapshot never holds the full card number or the CVV.
func maskPayment(info models.PaymentInfo) models.PaymentInfo {
	digits := strings.Builder{}
	for _, r := range info.CardNumber {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	num := digits.String()
	if len(num) > 4 {
		num = num[len(num)-4:]
	}
	return models.PaymentInfo{
		CardholderName: info.CardholderName,
		CardNumber:     "**** " + num,
		ExpiryDate:     info.ExpiryDate,
		CardType:       info.CardType,
	}
}

// ListOrders returns the global ledger, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.Preload("Items").Order("date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// AccountOrders returns the account's order history, newest first.
func (s *OrderService) AccountOrders(ctx context.Context, accountID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.Preload("Items").Where("user_id = ?", accountID).
		Order("date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &order, nil
}
