package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"greens/entities"
	"greens/pkg/planting/repository"
)

type plantingRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlantingRepository { return &plantingRepo{db} }

func (r *plantingRepo) Create(p *entities.PlantingPlan) error { return r.db.Create(p).Error }

func (r *plantingRepo) ListHarvestBetween(from, to time.Time) ([]entities.PlantingPlan, error) {
	var out []entities.PlantingPlan
	err := r.db.
		Where("status IN ?", entities.HarvestableStatuses).
		Where("expected_harvest_date >= ? AND expected_harvest_date < ?", from, to).
		Order("expected_harvest_date asc").
		Find(&out).Error
	return out, err
}
