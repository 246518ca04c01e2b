// Package seed loads the delivery route fee table and crop tray yields from
// spreadsheet exports and writes them into the catalog.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"greens/entities"
	catalog "greens/pkg/catalog/repository"
	"greens/pkg/logger"
	"greens/pkg/pricing"
)

// Yields maps crop name to tray size to grams per tray.
type Yields map[string]map[string]int

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

type header map[string]int

func newHeader(cols []string) header {
	h := header{}
	for i, c := range cols {
		h[norm(c)] = i
	}
	return h
}

func (h header) find(keys ...string) int {
	for _, k := range keys {
		if idx, ok := h[norm(k)]; ok {
			return idx
		}
	}
	return -1
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// LoadRoutesCSV reads one route per row. name and home_fee are required
// columns; other fees and thresholds default to 0 when absent or empty.
func LoadRoutesCSV(path string) ([]entities.DeliveryRoute, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readRoutes(f)
}

func readRoutes(r io.Reader) ([]entities.DeliveryRoute, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := newHeader(head)

	cName := h.find("name", "route", "route_name")
	cols := []int{
		h.find("home_fee", "home", "fee_home"),
		h.find("gastro_fee", "gastro", "fee_gastro"),
		h.find("wholesale_fee", "wholesale", "fee_wholesale"),
		h.find("home_min_free_delivery", "home_min", "home_threshold"),
		h.find("gastro_min_free_delivery", "gastro_min", "gastro_threshold"),
		h.find("wholesale_min_free_delivery", "wholesale_min", "wholesale_threshold"),
	}
	if cName == -1 || cols[0] == -1 {
		return nil, fmt.Errorf("routes csv missing required columns, found headers %v, need at least name, home_fee", head)
	}

	var out []entities.DeliveryRoute
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		name := cell(rec, cName)
		if name == "" {
			continue
		}
		amounts := make([]decimal.Decimal, len(cols))
		for i, idx := range cols {
			v := cell(rec, idx)
			if v == "" {
				continue
			}
			if amounts[i], err = pricing.ParsePrice(v); err != nil {
				return nil, fmt.Errorf("line %d (%s): column %q: %w", line, name, head[idx], err)
			}
		}
		out = append(out, entities.DeliveryRoute{
			Name:                     name,
			HomeFee:                  amounts[0],
			GastroFee:                amounts[1],
			WholesaleFee:             amounts[2],
			HomeMinFreeDelivery:      amounts[3],
			GastroMinFreeDelivery:    amounts[4],
			WholesaleMinFreeDelivery: amounts[5],
		})
	}
	return out, nil
}

// LoadCropYieldsXLSX reads grams per tray from sheet. The first row is a header
// of "crop" followed by any of the tray sizes XL, L, M, S.
func LoadCropYieldsXLSX(path, sheet string) (Yields, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	if sheet == "" {
		sheet = x.GetSheetName(0)
	}
	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	h := newHeader(rows[0])
	cCrop := h.find("crop", "name", "crop_name")
	if cCrop == -1 {
		return nil, fmt.Errorf("sheet %q missing crop column, found headers %v", sheet, rows[0])
	}
	sizes := map[int]entities.TraySize{}
	for i, col := range rows[0] {
		if ts, err := entities.ParseTraySize(col); err == nil {
			sizes[i] = ts
		}
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("sheet %q has no tray size columns (XL, L, M, S)", sheet)
	}

	out := Yields{}
	for n, row := range rows[1:] {
		crop := cell(row, cCrop)
		if crop == "" {
			continue
		}
		for idx, ts := range sizes {
			v := cell(row, idx)
			if v == "" {
				continue
			}
			g, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
			if err != nil || g <= 0 {
				return nil, fmt.Errorf("row %d (%s): %s yield %q is not a positive number", n+2, crop, ts, v)
			}
			if out[crop] == nil {
				out[crop] = map[string]int{}
			}
			out[crop][string(ts)] = int(math.Round(g))
		}
	}
	return out, nil
}

// Apply upserts routes by name and replaces the tray yields of each crop.
func Apply(repo catalog.CatalogRepository, routes []entities.DeliveryRoute, yields Yields, log *logger.Logger) error {
	log = logger.OrDiscard(log).WithComponent("seed")
	for i := range routes {
		if err := repo.UpsertRoute(&routes[i]); err != nil {
			return fmt.Errorf("upsert route %q: %w", routes[i].Name, err)
		}
	}
	for name, y := range yields {
		if _, err := repo.SetCropYields(name, y); err != nil {
			return fmt.Errorf("set yields for %q: %w", name, err)
		}
	}
	log.Info("catalog seeded", "routes", len(routes), "crops", len(yields))
	return nil
}
