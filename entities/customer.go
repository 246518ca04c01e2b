package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerType string

const (
	CustomerHome      CustomerType = "home"
	CustomerGastro    CustomerType = "gastro"
	CustomerWholesale CustomerType = "wholesale"
)

func ParseCustomerType(s string) (CustomerType, error) {
	switch v := CustomerType(strings.ToLower(strings.TrimSpace(s))); v {
	case CustomerHome, CustomerGastro, CustomerWholesale:
		return v, nil
	}
	return "", fmt.Errorf("unknown customer type %q", s)
}

type Customer struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string       `json:"name"`
	CompanyName     string       `json:"company_name"`
	CustomerType    CustomerType `gorm:"size:16" json:"customer_type"` // home|gastro|wholesale
	DeliveryRouteID *uuid.UUID   `gorm:"type:uuid;index" json:"delivery_route_id"`
	FreeDelivery    bool         `json:"free_delivery"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave normalizes the customer type and rejects unknown values.
func (c *Customer) BeforeSave(tx *gorm.DB) error {
	t, err := ParseCustomerType(string(c.CustomerType))
	if err != nil {
		return err
	}
	c.CustomerType = t
	return nil
}

// DisplayName prefers the company name for business customers.
func (c Customer) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	return c.Name
}

// DeliveryRoute carries a fee and a free-delivery threshold per customer type.
// A zero threshold never waives the fee.
type DeliveryRoute struct {
	ID                       uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name                     string          `gorm:"uniqueIndex" json:"name"`
	HomeFee                  decimal.Decimal `gorm:"type:decimal(12,2)" json:"home_fee"`
	GastroFee                decimal.Decimal `gorm:"type:decimal(12,2)" json:"gastro_fee"`
	WholesaleFee             decimal.Decimal `gorm:"type:decimal(12,2)" json:"wholesale_fee"`
	HomeMinFreeDelivery      decimal.Decimal `gorm:"type:decimal(12,2)" json:"home_min_free_delivery"`
	GastroMinFreeDelivery    decimal.Decimal `gorm:"type:decimal(12,2)" json:"gastro_min_free_delivery"`
	WholesaleMinFreeDelivery decimal.Decimal `gorm:"type:decimal(12,2)" json:"wholesale_min_free_delivery"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeeFor selects the fee/threshold pair for a customer type.
func (r DeliveryRoute) FeeFor(t CustomerType) (fee, threshold decimal.Decimal, ok bool) {
	switch t {
	case CustomerHome:
		return r.HomeFee, r.HomeMinFreeDelivery, true
	case CustomerGastro:
		return r.GastroFee, r.GastroMinFreeDelivery, true
	case CustomerWholesale:
		return r.WholesaleFee, r.WholesaleMinFreeDelivery, true
	}
	return decimal.Zero, decimal.Zero, false
}
