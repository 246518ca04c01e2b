// Package pricing computes order subtotals, delivery fees and totals. Every
// function is deterministic for the same inputs; the only side effect is
// logging of malformed or inconsistent data.
package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"greens/entities"
	"greens/pkg/logger"
)

// Tolerance is the allowed gap between a stored and a recomputed delivery price.
var Tolerance = decimal.New(1, -2)

type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Discrepancy flags a persisted delivery price that no longer matches the
// current route rules. Historical orders keep their price; this is informational.
type Discrepancy struct {
	Stored   decimal.Decimal `json:"stored"`
	Computed decimal.Decimal `json:"computed"`
	Delta    decimal.Decimal `json:"delta"`
}

type Engine struct {
	log *logger.Logger
}

func NewEngine(l *logger.Logger) *Engine {
	return &Engine{log: logger.OrDiscard(l).WithComponent("pricing")}
}

// LineTotal is quantity × price-per-unit rounded to cents. An unparsable price counts as 0.
func (e *Engine) LineTotal(it entities.OrderItem) decimal.Decimal {
	return e.lineAmount(it).Round(2)
}

func (e *Engine) lineAmount(it entities.OrderItem) decimal.Decimal {
	price, err := ParsePrice(it.PricePerUnit)
	if err != nil {
		e.log.Warn("unparsable price treated as 0", "item_id", it.ID, "price_per_unit", it.PricePerUnit, "error", err)
		return decimal.Zero
	}
	return decimal.NewFromFloat(it.Quantity).Mul(price)
}

// Subtotal sums the line items. Legacy orders without items fall back to the
// stored total minus the stored delivery price.
func (e *Engine) Subtotal(o *entities.Order) decimal.Decimal {
	if o == nil {
		return decimal.Zero
	}
	if len(o.Items) == 0 {
		return o.TotalPrice.Sub(o.DeliveryPrice).Round(2)
	}
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(e.lineAmount(it))
	}
	return sum.Round(2)
}

// DeliveryFee applies the route rules for the customer's type.
func (e *Engine) DeliveryFee(o *entities.Order, c *entities.Customer, r *entities.DeliveryRoute) decimal.Decimal {
	return e.deliveryFee(o, c, r, func() decimal.Decimal { return e.Subtotal(o) })
}

func (e *Engine) deliveryFee(o *entities.Order, c *entities.Customer, r *entities.DeliveryRoute, subtotal func() decimal.Decimal) decimal.Decimal {
	if o == nil || !o.ChargeDelivery {
		return decimal.Zero
	}
	if c == nil || c.FreeDelivery {
		return decimal.Zero
	}
	if c.DeliveryRouteID == nil || *c.DeliveryRouteID == uuid.Nil {
		return decimal.Zero
	}
	if r == nil || r.ID != *c.DeliveryRouteID {
		e.log.Warn("delivery route not found, no fee charged", "customer_id", c.ID, "route_id", *c.DeliveryRouteID)
		return decimal.Zero
	}
	fee, threshold, ok := r.FeeFor(c.CustomerType)
	if !ok {
		e.log.Warn("unknown customer type, no fee charged", "customer_id", c.ID, "customer_type", c.CustomerType)
		return decimal.Zero
	}
	if threshold.IsPositive() && subtotal().GreaterThanOrEqual(threshold) {
		return decimal.Zero
	}
	return fee.Round(2)
}

func (e *Engine) Total(o *entities.Order, c *entities.Customer, r *entities.DeliveryRoute) decimal.Decimal {
	return e.Quote(o, c, r).Total
}

// Quote computes subtotal, delivery fee and total in one pass. A nil route yields a zero fee.
func (e *Engine) Quote(o *entities.Order, c *entities.Customer, r *entities.DeliveryRoute) Quote {
	sub := e.Subtotal(o)
	fee := e.deliveryFee(o, c, r, func() decimal.Decimal { return sub })
	return Quote{Subtotal: sub, DeliveryFee: fee, Total: sub.Add(fee)}
}

// Reconcile recomputes the quote and reports a Discrepancy when the stored
// delivery price differs from the current rules by more than Tolerance.
func (e *Engine) Reconcile(o *entities.Order, c *entities.Customer, r *entities.DeliveryRoute) (Quote, *Discrepancy) {
	q := e.Quote(o, c, r)
	if o == nil {
		return q, nil
	}
	delta := o.DeliveryPrice.Sub(q.DeliveryFee)
	if delta.Abs().LessThanOrEqual(Tolerance) {
		return q, nil
	}
	e.log.Warn("stored delivery price differs from current route rules",
		"order_id", o.ID, "stored", o.DeliveryPrice.StringFixed(2), "computed", q.DeliveryFee.StringFixed(2))
	return q, &Discrepancy{Stored: o.DeliveryPrice, Computed: q.DeliveryFee, Delta: delta}
}

// Routes is the route catalog indexed by id.
type Routes map[uuid.UUID]*entities.DeliveryRoute

func NewRoutes(list []entities.DeliveryRoute) Routes {
	out := make(Routes, len(list))
	for i := range list {
		out[list[i].ID] = &list[i]
	}
	return out
}

// For returns the customer's assigned route, or nil.
func (rs Routes) For(c *entities.Customer) *entities.DeliveryRoute {
	if c == nil || c.DeliveryRouteID == nil {
		return nil
	}
	return rs[*c.DeliveryRouteID]
}
