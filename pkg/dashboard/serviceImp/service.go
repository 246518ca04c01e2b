package serviceImp

import (
	"fmt"
	"time"

	"greens/pkg/capacity"
	catalog "greens/pkg/catalog/repository"
	"greens/pkg/dashboard/service"
	"greens/pkg/logger"
	orders "greens/pkg/order/repository"
	plantings "greens/pkg/planting/repository"
)

type dashboardService struct {
	plans   plantings.PlantingRepository
	orders  orders.Repo
	catalog catalog.CatalogRepository
	planner *capacity.Planner
	log     *logger.Logger
}

func New(p plantings.PlantingRepository, o orders.Repo, c catalog.CatalogRepository, planner *capacity.Planner, l *logger.Logger) service.Service {
	return &dashboardService{plans: p, orders: o, catalog: c, planner: planner, log: logger.OrDiscard(l).WithComponent("dashboard")}
}

// Capacity loads a window one day wider on both sides than the table needs.
// Stored timestamps may carry another offset; the planner keeps exact days.
func (s *dashboardService) Capacity(ref time.Time) (capacity.Table, error) {
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	from := start.AddDate(0, 0, -1)
	to := start.AddDate(0, 0, capacity.WindowDays+1)

	plans, err := s.plans.ListHarvestBetween(from, to)
	if err != nil {
		return nil, fmt.Errorf("load planting plans: %w", err)
	}
	orderTo := to.AddDate(0, 0, capacity.DeliveryLeadDays)
	list, err := s.orders.ListByDeliveryBetween(&from, &orderTo)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	crops, err := s.catalog.Crops()
	if err != nil {
		return nil, fmt.Errorf("load crops: %w", err)
	}
	s.log.Debug("computing capacity", "reference", start.Format(capacity.DayLayout), "plans", len(plans), "orders", len(list), "crops", len(crops))
	return s.planner.Compute(plans, list, crops, ref), nil
}
