package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"greens/entities"
	"greens/pkg/pricing"
)

type Service interface {
	Create(in *entities.Order) (*OrderView, error)
	Get(id uuid.UUID) (*OrderView, error)
	Quote(in *entities.Order) (pricing.Quote, error)
	UpdatePartial(id uuid.UUID, patch OrderPatch) (*OrderView, error)
	ListByDelivery(from, to *time.Time) ([]OrderView, error)
}

// OrderPatch changes only the non-nil fields. Changing items, delivery charging
// or the customer reprices the order; other patches keep the stored price.
type OrderPatch struct {
	CustomerID     *uuid.UUID
	DeliveryDate   *time.Time
	Status         *string
	ChargeDelivery *bool
	Notes          *string
	Items          *[]entities.OrderItem
}

func (p OrderPatch) Reprices() bool {
	return p.Items != nil || p.ChargeDelivery != nil || p.CustomerID != nil
}

// OrderView is an order with its freshly computed pricing. Mismatch is set
// when the stored delivery price no longer matches the route rules.
type OrderView struct {
	Order        *entities.Order      `json:"order"`
	CustomerName string               `json:"customer_name"`
	Pricing      pricing.Quote        `json:"pricing"`
	Mismatch     *pricing.Discrepancy `json:"delivery_price_mismatch,omitempty"`
}

// validationError reports input the caller must fix.
type validationError struct{ message string }

func (e validationError) Error() string { return e.message }

func NewValidationError(msg string) error { return validationError{message: msg} }

func IsValidation(err error) bool {
	var v validationError
	return errors.As(err, &v)
}
