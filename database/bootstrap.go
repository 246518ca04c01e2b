// database/bootstrap.go
package database

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"greens/entities"
)

// OpenSQLite opens the database at path and migrates every entity.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(
		&entities.DeliveryRoute{},
		&entities.Customer{},
		&entities.Crop{},
		&entities.PlantingPlan{},
		&entities.Order{},
		&entities.OrderItem{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}
