package serviceImp

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"greens/entities"
	catalog "greens/pkg/catalog/repository"
	"greens/pkg/logger"
	"greens/pkg/order/repository"
	svc "greens/pkg/order/service"
	"greens/pkg/pricing"
)

type service struct {
	repo    repository.Repo
	catalog catalog.CatalogRepository
	engine  *pricing.Engine
	log     *logger.Logger
}

func New(r repository.Repo, c catalog.CatalogRepository, e *pricing.Engine, l *logger.Logger) svc.Service {
	return &service{repo: r, catalog: c, engine: e, log: logger.OrDiscard(l).WithComponent("order_service")}
}

func (s *service) Create(o *entities.Order) (*svc.OrderView, error) {
	if o == nil {
		return nil, errors.New("nil order")
	}
	if err := validateHeader(o); err != nil {
		return nil, err
	}
	if err := validateItems(o.Items); err != nil {
		return nil, err
	}
	if o.Status == "" {
		o.Status = entities.OrderPending
	}
	customer, route, err := s.parties(o.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, svc.NewValidationError("customer does not exist")
	}
	q := s.price(o, customer, route)
	if err := s.repo.Create(o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.log.Info("order created", "order_id", o.ID, "customer", customer.DisplayName(), "total", q.Total.StringFixed(2))
	return &svc.OrderView{Order: o, CustomerName: customer.DisplayName(), Pricing: q}, nil
}

// Get is the display path: pricing is recomputed from the current route rules
// and any drift from the stored delivery price is reported, not corrected.
func (s *service) Get(id uuid.UUID) (*svc.OrderView, error) {
	o, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	customer, route, err := s.parties(o.CustomerID)
	if err != nil {
		return nil, err
	}
	return s.view(o, customer, route), nil
}

// Quote prices an unsaved order for the order form.
func (s *service) Quote(o *entities.Order) (pricing.Quote, error) {
	if o == nil {
		return pricing.Quote{}, errors.New("nil order")
	}
	customer, route, err := s.parties(o.CustomerID)
	if err != nil {
		return pricing.Quote{}, err
	}
	return s.engine.Quote(o, customer, route), nil
}

// UpdatePartial applies p. Line items are only checked when the patch
// replaces them, so orders without items can still change status.
func (s *service) UpdatePartial(id uuid.UUID, p svc.OrderPatch) (*svc.OrderView, error) {
	cur, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p.Status != nil {
		st, err := entities.ParseOrderStatus(*p.Status)
		if err != nil {
			return nil, svc.NewValidationError(err.Error())
		}
		cur.Status = st
	}
	if p.CustomerID != nil {
		cur.CustomerID = *p.CustomerID
	}
	if p.DeliveryDate != nil {
		cur.DeliveryDate = *p.DeliveryDate
	}
	if p.ChargeDelivery != nil {
		cur.ChargeDelivery = *p.ChargeDelivery
	}
	if p.Notes != nil {
		cur.Notes = *p.Notes
	}
	if err := validateHeader(cur); err != nil {
		return nil, err
	}
	if p.Items != nil {
		if err := validateItems(*p.Items); err != nil {
			return nil, err
		}
		cur.Items = *p.Items
	}

	customer, route, err := s.parties(cur.CustomerID)
	if err != nil {
		return nil, err
	}
	if !p.Reprices() {
		if err := s.repo.Update(cur); err != nil {
			return nil, fmt.Errorf("save order: %w", err)
		}
		return s.view(cur, customer, route), nil
	}

	if customer == nil {
		return nil, svc.NewValidationError("customer does not exist")
	}
	q := s.price(cur, customer, route)
	save := s.repo.Update
	if p.Items != nil {
		save = s.repo.ReplaceItemsAndUpdate
	}
	if err := save(cur); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	s.log.Info("order repriced", "order_id", cur.ID, "total", q.Total.StringFixed(2), "delivery", q.DeliveryFee.StringFixed(2))
	return &svc.OrderView{Order: cur, CustomerName: customer.DisplayName(), Pricing: q}, nil
}

// ListByDelivery prices every order against one snapshot of the route catalog.
func (s *service) ListByDelivery(from, to *time.Time) ([]svc.OrderView, error) {
	list, err := s.repo.ListByDeliveryBetween(from, to)
	if err != nil {
		return nil, err
	}
	all, err := s.catalog.Routes()
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	routes := pricing.NewRoutes(all)

	customers := map[uuid.UUID]*entities.Customer{}
	out := make([]svc.OrderView, 0, len(list))
	for i := range list {
		o := &list[i]
		c, seen := customers[o.CustomerID]
		if !seen {
			if c, err = s.customer(o.CustomerID); err != nil {
				return nil, err
			}
			customers[o.CustomerID] = c
		}
		out = append(out, *s.view(o, c, routes.For(c)))
	}
	return out, nil
}

func (s *service) view(o *entities.Order, c *entities.Customer, r *entities.DeliveryRoute) *svc.OrderView {
	q, mismatch := s.engine.Reconcile(o, c, r)
	v := &svc.OrderView{Order: o, Pricing: q, Mismatch: mismatch}
	if c != nil {
		v.CustomerName = c.DisplayName()
	}
	return v
}

// price stamps line totals and the quote onto the order before it is persisted.
func (s *service) price(o *entities.Order, c *entities.Customer, r *entities.DeliveryRoute) pricing.Quote {
	for i := range o.Items {
		o.Items[i].TotalPrice = s.engine.LineTotal(o.Items[i])
	}
	q := s.engine.Quote(o, c, r)
	o.TotalPrice = q.Total
	o.DeliveryPrice = q.DeliveryFee
	return q
}

// customer returns nil for a missing customer so pricing falls back to a zero fee.
func (s *service) customer(id uuid.UUID) (*entities.Customer, error) {
	c, err := s.catalog.CustomerByID(id)
	if errors.Is(err, catalog.ErrNotFound) {
		s.log.Warn("customer not found", "customer_id", id)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	return c, nil
}

// parties resolves the customer and its route. Missing records come back as nil.
func (s *service) parties(customerID uuid.UUID) (*entities.Customer, *entities.DeliveryRoute, error) {
	c, err := s.customer(customerID)
	if err != nil || c == nil || c.DeliveryRouteID == nil {
		return c, nil, err
	}
	r, err := s.catalog.RouteByID(*c.DeliveryRouteID)
	if errors.Is(err, catalog.ErrNotFound) {
		return c, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load route: %w", err)
	}
	return c, r, nil
}

func validateHeader(o *entities.Order) error {
	if o.CustomerID == uuid.Nil {
		return svc.NewValidationError("customer_id is required")
	}
	if o.DeliveryDate.IsZero() {
		return svc.NewValidationError("delivery_date is required")
	}
	if o.Status != "" {
		if _, err := entities.ParseOrderStatus(string(o.Status)); err != nil {
			return svc.NewValidationError(err.Error())
		}
	}
	return nil
}

func validateItems(items []entities.OrderItem) error {
	if len(items) == 0 {
		return svc.NewValidationError("at least one item is required")
	}
	for i, it := range items {
		if (it.CropID == nil) == (it.BlendID == nil) {
			return svc.NewValidationError(fmt.Sprintf("item %d: exactly one of crop_id or blend_id is required", i+1))
		}
		if it.Quantity <= 0 {
			return svc.NewValidationError(fmt.Sprintf("item %d: quantity must be positive", i+1))
		}
		if _, err := pricing.ParsePrice(it.PricePerUnit); err != nil {
			return svc.NewValidationError(fmt.Sprintf("item %d: price_per_unit is not a number", i+1))
		}
	}
	return nil
}
