package repositoryImp

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"greens/database"
	"greens/entities"
	"greens/pkg/planting/repository"
)

func newRepo(t *testing.T) repository.PlantingRepository {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "planting.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(db)
}

func TestListHarvestBetween(t *testing.T) {
	r := newRepo(t)
	crop := uuid.New()
	day := func(d int) time.Time { return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC) }
	for _, p := range []entities.PlantingPlan{
		{CropID: crop, TrayCount: 1, TraySize: entities.TrayXL, Status: entities.PlanGrowing, ExpectedHarvestDate: day(15)},
		{CropID: crop, TrayCount: 2, TraySize: entities.TrayM, Status: entities.PlanSown, ExpectedHarvestDate: day(16)},
		{CropID: crop, TrayCount: 3, TraySize: entities.TrayS, Status: entities.PlanHarvested, ExpectedHarvestDate: day(17)},
		{CropID: crop, TrayCount: 4, TraySize: entities.TrayL, Status: entities.PlanPlanned, ExpectedHarvestDate: day(20)},
		{CropID: crop, TrayCount: 5, TraySize: entities.TrayL, Status: entities.PlanPlanned, ExpectedHarvestDate: day(23)},
	} {
		if err := r.Create(&p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := r.ListHarvestBetween(day(16), day(23))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].TrayCount != 2 || got[1].TrayCount != 4 {
		t.Errorf("plans = %+v", got)
	}
}

func TestCreateNormalizesEnums(t *testing.T) {
	r := newRepo(t)
	p := &entities.PlantingPlan{CropID: uuid.New(), TrayCount: 2, TraySize: "xl", Status: " Growing", ExpectedHarvestDate: time.Now()}
	if err := r.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.TraySize != entities.TrayXL || p.Status != entities.PlanGrowing {
		t.Errorf("plan = %+v", p)
	}

	tests := []struct {
		name   string
		status entities.PlanStatus
		size   entities.TraySize
	}{
		{"unknown status", "wilted", entities.TrayM},
		{"unknown tray size", entities.PlanSown, "XXL"},
	}
	for _, tt := range tests {
		bad := &entities.PlantingPlan{CropID: uuid.New(), TrayCount: 1, TraySize: tt.size, Status: tt.status, ExpectedHarvestDate: time.Now()}
		if err := r.Create(bad); err == nil {
			t.Errorf("%s: plan was saved", tt.name)
		}
	}
}
