package repository

import (
	"time"

	"greens/entities"
)

type PlantingRepository interface {
	Create(p *entities.PlantingPlan) error
	// ListHarvestBetween returns plans still growing whose expected harvest falls in [from, to).
	ListHarvestBetween(from, to time.Time) ([]entities.PlantingPlan, error)
}
