package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"greens/pkg/capacity"
	dsvc "greens/pkg/dashboard/service"
)

type entryView struct {
	capacity.Entry
	Status      capacity.Status `json:"status"`
	Utilization float64         `json:"utilization"`
}

type capacityResponse struct {
	Reference string                 `json:"reference"`
	Dates     []string               `json:"dates"`
	Days      map[string][]entryView `json:"days"`
}

type CapacityCtrl struct {
	s   dsvc.Service
	loc *time.Location
	now func() time.Time
}

func New(s dsvc.Service, loc *time.Location, now func() time.Time) *CapacityCtrl {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &CapacityCtrl{s: s, loc: loc, now: now}
}

func (h *CapacityCtrl) Register(e *echo.Echo) {
	e.Group("/api/v1").GET("/capacity", h.Capacity)
	e.GET("/capacity", h.Capacity)
}

// Capacity serves GET /capacity?date=YYYY-MM-DD; without a date the window starts today.
func (h *CapacityCtrl) Capacity(c echo.Context) error {
	ref := h.now().In(h.loc)
	if v := c.QueryParam("date"); v != "" {
		t, err := time.ParseInLocation(capacity.DayLayout, v, h.loc)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
		}
		ref = t
	}
	table, err := h.s.Capacity(ref)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	resp := capacityResponse{
		Reference: ref.Format(capacity.DayLayout),
		Dates:     table.Dates(),
		Days:      make(map[string][]entryView, len(table)),
	}
	for _, day := range resp.Dates {
		rows := make([]entryView, 0, len(table[day]))
		for _, e := range table.Sorted(day) {
			rows = append(rows, entryView{Entry: e, Status: capacity.Classify(e), Utilization: e.Utilization()})
		}
		resp.Days[day] = rows
	}
	return c.JSON(http.StatusOK, resp)
}
