package controllerImp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"greens/entities"
	"greens/pkg/order/repository"
	osvc "greens/pkg/order/service"
)

const dateLayout = "2006-01-02"

type httpCtrl struct {
	s   osvc.Service
	loc *time.Location
}

// New builds the order controller. Dates without a zone are read in loc.
func New(s osvc.Service, loc *time.Location) *httpCtrl {
	if loc == nil {
		loc = time.UTC
	}
	return &httpCtrl{s: s, loc: loc}
}

func (h *httpCtrl) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/orders", h.create)
	g.POST("/orders/quote", h.quote)
	g.GET("/orders", h.list)
	g.GET("/orders/:id", h.get)
	g.PATCH("/orders/:id", h.patch)

	// un-prefixed fallback for the order form
	e.POST("/orders", h.create)
	e.POST("/orders/quote", h.quote)
	e.GET("/orders", h.list)
	e.GET("/orders/:id", h.get)
	e.PATCH("/orders/:id", h.patch)
}

// price accepts both "3,50" and 3.5 from clients.
type price string

func (p *price) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("price_per_unit must be a string or number")
	}
	*p = price(n.String())
	return nil
}

type itemRequest struct {
	CropID        *uuid.UUID `json:"crop_id"`
	BlendID       *uuid.UUID `json:"blend_id"`
	Quantity      float64    `json:"quantity"`
	Unit          string     `json:"unit"`
	PackagingSize string     `json:"packaging_size"`
	PricePerUnit  price      `json:"price_per_unit"`
}

type orderRequest struct {
	CustomerID     uuid.UUID     `json:"customer_id"`
	DeliveryDate   string        `json:"delivery_date"`
	Status         string        `json:"status"`
	ChargeDelivery *bool         `json:"charge_delivery"`
	Notes          string        `json:"notes"`
	Items          []itemRequest `json:"order_items"`
}

type patchRequest struct {
	CustomerID     *uuid.UUID     `json:"customer_id"`
	DeliveryDate   *string        `json:"delivery_date"`
	Status         *string        `json:"status"`
	ChargeDelivery *bool          `json:"charge_delivery"`
	Notes          *string        `json:"notes"`
	Items          *[]itemRequest `json:"order_items"`
}

func toItems(in []itemRequest) []entities.OrderItem {
	out := make([]entities.OrderItem, 0, len(in))
	for _, it := range in {
		out = append(out, entities.OrderItem{
			CropID:        it.CropID,
			BlendID:       it.BlendID,
			Quantity:      it.Quantity,
			Unit:          strings.TrimSpace(it.Unit),
			PackagingSize: strings.TrimSpace(it.PackagingSize),
			PricePerUnit:  strings.TrimSpace(string(it.PricePerUnit)),
		})
	}
	return out
}

func (h *httpCtrl) toOrder(in orderRequest) (*entities.Order, error) {
	o := &entities.Order{
		CustomerID:     in.CustomerID,
		Status:         entities.OrderStatus(strings.ToLower(strings.TrimSpace(in.Status))),
		ChargeDelivery: true,
		Notes:          in.Notes,
		Items:          toItems(in.Items),
	}
	if in.ChargeDelivery != nil {
		o.ChargeDelivery = *in.ChargeDelivery
	}
	if in.DeliveryDate != "" {
		d, err := h.parseDate(in.DeliveryDate)
		if err != nil {
			return nil, err
		}
		o.DeliveryDate = d
	}
	return o, nil
}

func (h *httpCtrl) create(c echo.Context) error {
	var in orderRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	o, err := h.toOrder(in)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	out, err := h.s.Create(o)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *httpCtrl) quote(c echo.Context) error {
	var in orderRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	o, err := h.toOrder(in)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	q, err := h.s.Quote(o)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *httpCtrl) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	out, err := h.s.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// list filters by delivery date; both bounds are inclusive calendar days.
func (h *httpCtrl) list(c echo.Context) error {
	var fromPtr, toPtr *time.Time
	if v := c.QueryParam("from"); v != "" {
		t, err := h.parseDate(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from"})
		}
		fromPtr = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := h.parseDate(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to"})
		}
		t = t.AddDate(0, 0, 1)
		toPtr = &t
	}
	list, err := h.s.ListByDelivery(fromPtr, toPtr)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *httpCtrl) patch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in patchRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	p := osvc.OrderPatch{
		CustomerID:     in.CustomerID,
		Status:         in.Status,
		ChargeDelivery: in.ChargeDelivery,
		Notes:          in.Notes,
	}
	if in.DeliveryDate != nil {
		d, err := h.parseDate(*in.DeliveryDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		p.DeliveryDate = &d
	}
	if in.Items != nil {
		items := toItems(*in.Items)
		p.Items = &items
	}
	out, err := h.s.UpdatePartial(id, p)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// parseDate accepts a calendar day in the controller's location or an RFC 3339 timestamp.
func (h *httpCtrl) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, h.loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(h.loc), nil
	}
	return time.Time{}, errors.New("invalid date " + s + ", want YYYY-MM-DD")
}

func fail(c echo.Context, err error) error {
	switch {
	case osvc.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
