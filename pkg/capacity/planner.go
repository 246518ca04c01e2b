// Package capacity cross-tabulates planned harvest yield against confirmed
// order demand for a rolling seven-day window.
package capacity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"greens/entities"
	"greens/pkg/logger"
)

const (
	DayLayout = "2006-01-02"

	WindowDays = 7
	// DeliveryLeadDays lets an order delivered the day after a harvest draw on that harvest.
	DeliveryLeadDays = 1
	// UnknownTrayYield is used when the tray size itself is unrecognized.
	UnknownTrayYield = 80.0
)

// DefaultTrayYields are grams per tray when a crop has no configuration for a size.
var DefaultTrayYields = map[entities.TraySize]float64{
	entities.TrayXL: 80,
	entities.TrayL:  65,
	entities.TrayM:  48,
	entities.TrayS:  32,
}

// Entry is one row of the capacity table. PackageSize is 0 for a crop that
// has capacity but no orders on that date.
type Entry struct {
	CropName    string    `json:"cropName"`
	CropID      uuid.UUID `json:"cropId"`
	PackageSize int       `json:"packageSize"`
	Capacity    float64   `json:"capacity"`
	Ordered     float64   `json:"ordered"`
	Free        float64   `json:"free"`
}

// Table maps an ISO date to entries keyed by crop id, or "<cropID>_<grams>"
// once orders reveal package sizes.
type Table map[string]map[string]Entry

// EntryKey is the key of a package-size variant. A crop without orders on a
// date is keyed by its bare id.
func EntryKey(cropID uuid.UUID, packageSize int) string {
	return fmt.Sprintf("%s_%d", cropID, packageSize)
}

// Dates returns the table's dates in ascending order.
func (t Table) Dates() []string {
	out := make([]string, 0, len(t))
	for d := range t {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Sorted returns the entries for one date ordered by crop name, then package size.
func (t Table) Sorted(day string) []Entry {
	out := make([]Entry, 0, len(t[day]))
	for _, e := range t[day] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CropName != out[j].CropName {
			return out[i].CropName < out[j].CropName
		}
		return out[i].PackageSize < out[j].PackageSize
	})
	return out
}

// YieldPerTray resolves grams per tray from the crop's configuration, the
// defaults, or UnknownTrayYield for an unrecognized size.
func YieldPerTray(crop *entities.Crop, size entities.TraySize) float64 {
	size = entities.TraySize(strings.ToUpper(strings.TrimSpace(string(size))))
	if crop != nil {
		if g := crop.TrayYields[string(size)]; g > 0 {
			return float64(g)
		}
	}
	if g, ok := DefaultTrayYields[size]; ok {
		return g
	}
	return UnknownTrayYield
}

type Planner struct {
	log *logger.Logger
}

func NewPlanner(l *logger.Logger) *Planner {
	return &Planner{log: logger.OrDiscard(l).WithComponent("capacity")}
}

// cropCapacity is the phase-one aggregate: total grams per crop on one date.
type cropCapacity struct {
	crop  *entities.Crop
	grams float64
}

// demandLine is an order line with a crop, resolved to its delivery day.
type demandLine struct {
	day      string
	cropID   uuid.UUID
	grams    int
	quantity float64
}

// Compute builds the capacity table for ref's day and the following six days.
// Calendar days are taken in ref's location.
func (p *Planner) Compute(plans []entities.PlantingPlan, orders []entities.Order, crops []entities.Crop, ref time.Time) Table {
	loc := ref.Location()
	cropByID := make(map[uuid.UUID]*entities.Crop, len(crops))
	for i := range crops {
		cropByID[crops[i].ID] = &crops[i]
	}
	lines := p.openLines(orders, loc)

	start := dayStart(ref, loc)
	out := make(Table, WindowDays)
	for i := 0; i < WindowDays; i++ {
		d := start.AddDate(0, 0, i)
		day := d.Format(DayLayout)
		leadDay := d.AddDate(0, 0, DeliveryLeadDays).Format(DayLayout)

		base := p.capacityByCrop(day, plans, cropByID, loc)
		demand := linesFor(lines, day, leadDay)
		entries := expand(base, packageSizes(demand))
		account(entries, demand)
		out[day] = entries
	}
	return out
}

func (p *Planner) capacityByCrop(day string, plans []entities.PlantingPlan, cropByID map[uuid.UUID]*entities.Crop, loc *time.Location) map[uuid.UUID]cropCapacity {
	out := map[uuid.UUID]cropCapacity{}
	for _, pl := range plans {
		if !pl.Status.Harvestable() || pl.ExpectedHarvestDate.In(loc).Format(DayLayout) != day {
			continue
		}
		crop, ok := cropByID[pl.CropID]
		if !ok {
			p.log.Warn("planting plan references unknown crop, skipped", "plan_id", pl.ID, "crop_id", pl.CropID)
			continue
		}
		cc := out[crop.ID]
		cc.crop = crop
		cc.grams += float64(pl.TrayCount) * YieldPerTray(crop, pl.TraySize)
		out[crop.ID] = cc
	}
	return out
}

// openLines flattens crop lines of orders that still claim capacity, parsing
// package sizes once for the whole window.
func (p *Planner) openLines(orders []entities.Order, loc *time.Location) []demandLine {
	var out []demandLine
	for _, o := range orders {
		if !o.Status.Open() {
			continue
		}
		day := o.DeliveryDate.In(loc).Format(DayLayout)
		for _, it := range o.Items {
			if it.CropID == nil {
				continue
			}
			size, err := it.PackSize()
			if err != nil {
				p.log.Warn("unparsable package size treated as 0", "order_id", o.ID, "item_id", it.ID, "packaging_size", it.PackagingSize)
			}
			out = append(out, demandLine{day: day, cropID: *it.CropID, grams: size.Grams(), quantity: it.Quantity})
		}
	}
	return out
}

func linesFor(lines []demandLine, day, leadDay string) []demandLine {
	var out []demandLine
	for _, l := range lines {
		if l.day == day || l.day == leadDay {
			out = append(out, l)
		}
	}
	return out
}

func packageSizes(demand []demandLine) map[uuid.UUID][]int {
	seen := map[uuid.UUID]map[int]bool{}
	out := map[uuid.UUID][]int{}
	for _, l := range demand {
		if seen[l.cropID] == nil {
			seen[l.cropID] = map[int]bool{}
		}
		if !seen[l.cropID][l.grams] {
			seen[l.cropID][l.grams] = true
			out[l.cropID] = append(out[l.cropID], l.grams)
		}
	}
	return out
}

// expand is phase two: a crop with discovered package sizes gets one entry per
// size, each carrying the crop's full capacity. Other crops keep one entry.
func expand(base map[uuid.UUID]cropCapacity, sizes map[uuid.UUID][]int) map[string]Entry {
	out := make(map[string]Entry, len(base))
	for id, cc := range base {
		entry := Entry{CropName: cc.crop.Name, CropID: id, Capacity: cc.grams, Free: cc.grams}
		if len(sizes[id]) == 0 {
			out[id.String()] = entry
			continue
		}
		for _, size := range sizes[id] {
			entry.PackageSize = size
			out[EntryKey(id, size)] = entry
		}
	}
	return out
}

// account adds ordered grams to the matching entries and derives free.
// Free may go negative to signal over-commitment.
func account(entries map[string]Entry, demand []demandLine) {
	for _, l := range demand {
		key := EntryKey(l.cropID, l.grams)
		e, ok := entries[key]
		if !ok {
			continue
		}
		e.Ordered += l.quantity * float64(l.grams)
		entries[key] = e
	}
	for k, e := range entries {
		e.Free = e.Capacity - e.Ordered
		entries[k] = e
	}
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
