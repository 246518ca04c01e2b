package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"greens/entities"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadRoutesCSV(t *testing.T) {
	p := writeFile(t, "routes.csv", "\uFEFFName,Home Fee,gastro-fee,Home_Min_Free_Delivery\n"+
		"Center,\"3,50\",5,30\n"+
		",1,1,1\n"+
		"North,4.00,,\n")

	routes, err := LoadRoutesCSV(p)
	if err != nil {
		t.Fatalf("LoadRoutesCSV: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(routes))
	}
	c := routes[0]
	if c.Name != "Center" || !c.HomeFee.Equal(decimal.RequireFromString("3.5")) ||
		!c.GastroFee.Equal(decimal.NewFromInt(5)) || !c.HomeMinFreeDelivery.Equal(decimal.NewFromInt(30)) {
		t.Errorf("center = %+v", c)
	}
	if !c.WholesaleFee.IsZero() || !c.WholesaleMinFreeDelivery.IsZero() {
		t.Errorf("missing columns must default to 0: %+v", c)
	}
	if !routes[1].GastroFee.IsZero() || !routes[1].HomeFee.Equal(decimal.NewFromInt(4)) {
		t.Errorf("north = %+v", routes[1])
	}
}

func TestLoadRoutesCSVErrors(t *testing.T) {
	tests := []struct {
		name, content, want string
	}{
		{"missing home fee column", "name,gastro_fee\nCenter,5\n", "missing required columns"},
		{"malformed fee", "name,home_fee\nCenter,free\n", "line 2 (Center)"},
		{"empty file", "", "read header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRoutesCSV(writeFile(t, "routes.csv", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func writeYields(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", ref, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	p := filepath.Join(t.TempDir(), "yields.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadCropYieldsXLSX(t *testing.T) {
	p := writeYields(t, [][]any{
		{"Crop", "XL", "m", "notes"},
		{"Pea Shoots", 120, 70, "fast"},
		{"Radish", "", 60},
		{"", 1, 1},
	})
	y, err := LoadCropYieldsXLSX(p, "Sheet1")
	if err != nil {
		t.Fatalf("LoadCropYieldsXLSX: %v", err)
	}
	if len(y) != 2 {
		t.Fatalf("yields = %+v", y)
	}
	if y["Pea Shoots"]["XL"] != 120 || y["Pea Shoots"]["M"] != 70 {
		t.Errorf("pea = %+v", y["Pea Shoots"])
	}
	if _, ok := y["Radish"]["XL"]; ok || y["Radish"]["M"] != 60 {
		t.Errorf("radish = %+v", y["Radish"])
	}
}

func TestLoadCropYieldsXLSXErrors(t *testing.T) {
	if _, err := LoadCropYieldsXLSX(writeYields(t, [][]any{{"name", "XL"}, {"Pea", "lots"}}), ""); err == nil {
		t.Error("expected error for non-numeric yield")
	}
	if _, err := LoadCropYieldsXLSX(writeYields(t, [][]any{{"crop", "weight"}}), "Sheet1"); err == nil {
		t.Error("expected error without tray size columns")
	}
	if _, err := LoadCropYieldsXLSX(writeYields(t, [][]any{{"crop", "XL"}}), "Missing"); err == nil {
		t.Error("expected error for missing sheet")
	}
}

type fakeCatalog struct {
	routes map[string]*entities.DeliveryRoute
	yields map[string]map[string]int
}

func (f *fakeCatalog) CreateCustomer(*entities.Customer) error { return nil }
func (f *fakeCatalog) CustomerByID(uuid.UUID) (*entities.Customer, error) {
	return nil, nil
}
func (f *fakeCatalog) RouteByID(uuid.UUID) (*entities.DeliveryRoute, error) {
	return nil, nil
}
func (f *fakeCatalog) Routes() ([]entities.DeliveryRoute, error) { return nil, nil }
func (f *fakeCatalog) Crops() ([]entities.Crop, error)           { return nil, nil }
func (f *fakeCatalog) UpsertRoute(r *entities.DeliveryRoute) error {
	f.routes[r.Name] = r
	return nil
}
func (f *fakeCatalog) SetCropYields(name string, y map[string]int) (*entities.Crop, error) {
	f.yields[name] = y
	return &entities.Crop{Name: name, TrayYields: y}, nil
}

func TestApply(t *testing.T) {
	repo := &fakeCatalog{routes: map[string]*entities.DeliveryRoute{}, yields: map[string]map[string]int{}}
	routes := []entities.DeliveryRoute{{Name: "Center"}, {Name: "North"}}
	yields := Yields{"Pea Shoots": {"XL": 120}}

	if err := Apply(repo, routes, yields, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(repo.routes) != 2 || repo.yields["Pea Shoots"]["XL"] != 120 {
		t.Errorf("routes = %v, yields = %v", repo.routes, repo.yields)
	}
}
