package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"greens/pkg/packsize"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch v := OrderStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case OrderPending, OrderConfirmed, OrderReady, OrderDelivered, OrderCancelled:
		return v, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Open reports whether the order still claims harvest capacity.
func (s OrderStatus) Open() bool {
	return s != OrderDelivered && s != OrderCancelled
}

type Order struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;index" json:"customer_id"`
	DeliveryDate   time.Time       `gorm:"index" json:"delivery_date"`
	Status         OrderStatus     `gorm:"size:16;index" json:"status"` // pending|confirmed|ready|delivered|cancelled
	ChargeDelivery bool            `json:"charge_delivery"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_price"`
	DeliveryPrice  decimal.Decimal `gorm:"type:decimal(12,2)" json:"delivery_price"`
	Notes          string          `json:"notes"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is one crop or blend line. CropID and BlendID are mutually exclusive.
type OrderItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID       `gorm:"type:uuid;index" json:"order_id"`
	CropID        *uuid.UUID      `gorm:"type:uuid;index" json:"crop_id"`
	BlendID       *uuid.UUID      `gorm:"type:uuid" json:"blend_id"`
	Quantity      float64         `json:"quantity"`
	Unit          string          `json:"unit"`
	PackagingSize string          `json:"packaging_size"`
	Pack          packsize.Size   `gorm:"embedded;embeddedPrefix:pack_" json:"pack"`
	PricePerUnit  string          `json:"price_per_unit"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_price"`
}

// BeforeSave parses the package label once so readers never re-parse it.
func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	// A label without digits is stored as the zero size; the planner logs it.
	i.Pack, _ = packsize.Parse(i.PackagingSize)
	return nil
}

// PackSize returns the stored parsed size, parsing the label for snapshots
// that never went through the database.
func (i OrderItem) PackSize() (packsize.Size, error) {
	if !i.Pack.IsZero() {
		return i.Pack, nil
	}
	return packsize.Parse(i.PackagingSize)
}
