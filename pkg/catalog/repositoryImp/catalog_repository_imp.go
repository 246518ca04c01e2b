package repositoryImp

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"greens/entities"
	"greens/pkg/catalog/repository"
)

type catalogRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CatalogRepository { return &catalogRepo{db} }

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

func (r *catalogRepo) CreateCustomer(c *entities.Customer) error { return r.db.Create(c).Error }

func (r *catalogRepo) CustomerByID(id uuid.UUID) (*entities.Customer, error) {
	var c entities.Customer
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *catalogRepo) RouteByID(id uuid.UUID) (*entities.DeliveryRoute, error) {
	var out entities.DeliveryRoute
	if err := r.db.First(&out, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (r *catalogRepo) Routes() ([]entities.DeliveryRoute, error) {
	var out []entities.DeliveryRoute
	return out, r.db.Order("name asc").Find(&out).Error
}

func (r *catalogRepo) Crops() ([]entities.Crop, error) {
	var out []entities.Crop
	return out, r.db.Order("name asc").Find(&out).Error
}

// UpsertRoute matches routes by name so a seed file can be re-applied.
func (r *catalogRepo) UpsertRoute(rt *entities.DeliveryRoute) error {
	var cur entities.DeliveryRoute
	err := r.db.Where("name = ?", rt.Name).First(&cur).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.Create(rt).Error
	case err != nil:
		return fmt.Errorf("find route %q: %w", rt.Name, err)
	}
	rt.ID = cur.ID
	rt.CreatedAt = cur.CreatedAt
	return r.db.Save(rt).Error
}

func (r *catalogRepo) SetCropYields(cropName string, yields map[string]int) (*entities.Crop, error) {
	var c entities.Crop
	err := r.db.Where("name = ?", cropName).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entities.Crop{Name: cropName, TrayYields: yields}
		if err := r.db.Create(&c).Error; err != nil {
			return nil, fmt.Errorf("create crop %q: %w", cropName, err)
		}
		return &c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find crop %q: %w", cropName, err)
	}
	c.TrayYields = yields
	if err := r.db.Save(&c).Error; err != nil {
		return nil, fmt.Errorf("save crop %q: %w", cropName, err)
	}
	return &c, nil
}
