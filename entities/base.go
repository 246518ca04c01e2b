package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID fills an empty primary key before insert.
func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (o *Order) BeforeCreate(tx *gorm.DB) error         { newID(&o.ID); return nil }
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error     { newID(&i.ID); return nil }
func (c *Customer) BeforeCreate(tx *gorm.DB) error      { newID(&c.ID); return nil }
func (r *DeliveryRoute) BeforeCreate(tx *gorm.DB) error { newID(&r.ID); return nil }
func (p *PlantingPlan) BeforeCreate(tx *gorm.DB) error  { newID(&p.ID); return nil }
func (c *Crop) BeforeCreate(tx *gorm.DB) error          { newID(&c.ID); return nil }
