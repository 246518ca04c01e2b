package repository

import (
	"errors"

	"github.com/google/uuid"

	"greens/entities"
)

// ErrNotFound marks a missing customer, route or crop. Pricing callers turn it
// into a nil reference and a zero fee.
var ErrNotFound = errors.New("catalog record not found")

// CatalogRepository is the read side for customers, delivery routes and crops,
// plus the upserts used by seeding.
type CatalogRepository interface {
	CreateCustomer(c *entities.Customer) error
	CustomerByID(id uuid.UUID) (*entities.Customer, error)
	RouteByID(id uuid.UUID) (*entities.DeliveryRoute, error)
	Routes() ([]entities.DeliveryRoute, error)
	Crops() ([]entities.Crop, error)
	UpsertRoute(r *entities.DeliveryRoute) error
	SetCropYields(cropName string, yields map[string]int) (*entities.Crop, error)
}
