package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"greens/entities"
)

var ErrNotFound = errors.New("order not found")

type Repo interface {
	Create(o *entities.Order) error
	Update(o *entities.Order) error
	FindByID(id uuid.UUID) (*entities.Order, error)
	// ReplaceItemsAndUpdate swaps the order's items and saves its header atomically.
	ReplaceItemsAndUpdate(o *entities.Order) error
	ListByDeliveryBetween(from, to *time.Time) ([]entities.Order, error)
}
