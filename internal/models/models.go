package models

import (
	"time"
)

// LocalizedText holds one string per language code ("en", "sk", "hu").
type LocalizedText map[string]string

const DefaultLanguage = "en"

// Resolve returns the text for lang, falling back to English and then to
// any available translation.
func (t LocalizedText) Resolve(lang string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	if v, ok := t[DefaultLanguage]; ok && v != "" {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

type StringList []string

type Product struct {
	ID           string        `gorm:"primaryKey"               json:"id"`
	SerialNumber string        `gorm:"uniqueIndex;not null"     json:"serialNumber"`
	SKU          string        `gorm:"index"                    json:"sku"`
	LabelCode    string        `json:"labelCode"`
	Name         LocalizedText `gorm:"serializer:json;not null" json:"name"`
	Description  LocalizedText `gorm:"serializer:json"          json:"description"`
	CategoryKey  string        `gorm:"index"                    json:"categoryKey"`
	Dimensions   string        `json:"dimensions"`
	Weight       string        `json:"weight"`
	Material     string        `json:"material"`
	Supplier     string        `json:"supplier"`
	SupplierCode string        `json:"supplierCode"`
	Price        float64       `gorm:"not null"                 json:"price"`
	Quantity     int           `gorm:"not null"                 json:"quantity"`
	MinStock     int           `json:"minStockLevel"`
	MaxStock     int           `json:"maxStockLevel"`
	IsActive     bool          `json:"isActive"`
	Images       StringList    `gorm:"serializer:json"          json:"images"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// CartLine is one product row of a cart. OwnerID is either a session id
// (the active cart) or an account id (the persisted copy). Name, Price and
// Images are snapshots taken at add-to-cart time so the cart stays stable
// when the catalog entry changes.
type CartLine struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"-"`
	OwnerID   string        `gorm:"index;not null"           json:"-"`
	ProductID string        `gorm:"index;not null"           json:"productId"`
	Name      LocalizedText `gorm:"serializer:json"          json:"name"`
	Price     float64       `json:"price"`
	Images    StringList    `gorm:"serializer:json"          json:"images"`
	Quantity  int           `gorm:"not null"                 json:"quantity"`
}

type UserAccount struct {
	ID           string    `gorm:"primaryKey"           json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	Name         string    `json:"name"`
	CompanyName  string    `json:"companyName"`
	TaxNumber    string    `json:"taxNumber"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ShippingInfo struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

type PaymentInfo struct {
	CardholderName string `json:"cardholderName"`
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	CardType       string `json:"cardType"`
}

type DeliveryOption struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	NameKey  string  `json:"nameKey"`
	Cost     float64 `json:"cost"`
	Duration string  `json:"duration"`
}

const OrderStatusConfirmed = "confirmed"

// Order is immutable once created. Items, ShippingInfo, DeliveryOption and
// PaymentInfo are snapshots of the state at placement time.
type Order struct {
	ID             string         `gorm:"primaryKey"      json:"id"`
	UserID         string         `gorm:"index"           json:"userId"`
	Total          float64        `json:"total"`
	ShippingInfo   ShippingInfo   `gorm:"serializer:json" json:"shippingInfo"`
	DeliveryOption DeliveryOption `gorm:"serializer:json" json:"deliveryOption"`
	PaymentInfo    PaymentInfo    `gorm:"serializer:json" json:"paymentInfo"`
	Status         string         `json:"status"`
	Date           time.Time      `json:"date"`
	Items          []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
}

type OrderItem struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string        `gorm:"index;not null"           json:"-"`
	ProductID string        `gorm:"not null"                 json:"productId"`
	Name      LocalizedText `gorm:"serializer:json"          json:"name"`
	Price     float64       `json:"price"`
	Quantity  int           `json:"quantity"`
	Images    StringList    `gorm:"serializer:json"          json:"images"`
}
