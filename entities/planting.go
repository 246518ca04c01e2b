package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TraySize string

const (
	TrayXL TraySize = "XL"
	TrayL  TraySize = "L"
	TrayM  TraySize = "M"
	TrayS  TraySize = "S"
)

func ParseTraySize(s string) (TraySize, error) {
	switch v := TraySize(strings.ToUpper(strings.TrimSpace(s))); v {
	case TrayXL, TrayL, TrayM, TrayS:
		return v, nil
	}
	return "", fmt.Errorf("unknown tray size %q", s)
}

type PlanStatus string

const (
	PlanPlanned   PlanStatus = "planned"
	PlanSown      PlanStatus = "sown"
	PlanGrowing   PlanStatus = "growing"
	PlanHarvested PlanStatus = "harvested"
)

func ParsePlanStatus(s string) (PlanStatus, error) {
	switch v := PlanStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case PlanPlanned, PlanSown, PlanGrowing, PlanHarvested:
		return v, nil
	}
	return "", fmt.Errorf("unknown planting status %q", s)
}

// Harvestable reports whether the plan still yields capacity.
func (s PlanStatus) Harvestable() bool {
	return s == PlanPlanned || s == PlanSown || s == PlanGrowing
}

// HarvestableStatuses is used by repositories to filter plans in SQL.
var HarvestableStatuses = []PlanStatus{PlanPlanned, PlanSown, PlanGrowing}

type PlantingPlan struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CropID              uuid.UUID  `gorm:"type:uuid;index" json:"crop_id"`
	TrayCount           int        `json:"tray_count"`
	TraySize            TraySize   `gorm:"size:4" json:"tray_size"` // XL|L|M|S
	ExpectedHarvestDate time.Time  `gorm:"index" json:"expected_harvest_date"`
	Status              PlanStatus `gorm:"size:16;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *PlantingPlan) BeforeSave(tx *gorm.DB) error {
	st, err := ParsePlanStatus(string(p.Status))
	if err != nil {
		return err
	}
	size, err := ParseTraySize(string(p.TraySize))
	if err != nil {
		return err
	}
	p.Status, p.TraySize = st, size
	return nil
}

type Crop struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex" json:"name"`
	// TrayYields maps tray size (XL|L|M|S) to expected grams per tray.
	TrayYields map[string]int `gorm:"serializer:json" json:"tray_yields,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
