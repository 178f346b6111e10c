package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/hyelabel/shop-backend/internal/model"
	"github.com/hyelabel/shop-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Qty       int    `json:"qty"`
}

type CreateOrderRequest struct {
	BuyerName     string             `json:"buyerName"`
	BuyerPhone    string             `json:"buyerPhone"`
	BuyerEmail    *string            `json:"buyerEmail"`
	ShippingZip   string             `json:"shippingZip"`
	ShippingAddr1 string             `json:"shippingAddr1"`
	ShippingAddr2 *string            `json:"shippingAddr2"`
	ShippingMemo  *string            `json:"shippingMemo"`
	Items         []OrderItemRequest `json:"items"`
}

type CreateOrderResponse struct {
	OK      bool   `json:"ok"`
	OrderID string `json:"orderId"`
	OrderNo string `json:"orderNo"`
	Amount  int64  `json:"amount"`
}

type OrderResponse struct {
	ID                string            `json:"id"`
	OrderNo           string            `json:"orderNo"`
	BuyerName         string            `json:"buyerName"`
	BuyerPhone        string            `json:"buyerPhone"`
	BuyerEmail        *string           `json:"buyerEmail,omitempty"`
	ShippingZip       string            `json:"shippingZip"`
	ShippingAddr1     string            `json:"shippingAddr1"`
	ShippingAddr2     *string           `json:"shippingAddr2,omitempty"`
	ShippingMemo      *string           `json:"shippingMemo,omitempty"`
	Items             []model.OrderItem `json:"items"`
	Amount            int64             `json:"amount"`
	Currency          string            `json:"currency"`
	PaymentStatus     string            `json:"paymentStatus"`
	FulfillmentStatus string            `json:"fulfillmentStatus"`
	ShippingCarrier   *string           `json:"shippingCarrier"`
	TrackingNumber    *string           `json:"trackingNumber"`
	CreatedAt         string            `json:"createdAt"`
	UpdatedAt         string            `json:"updatedAt"`
}

// LookupOrderResponse carries the public lookup payload. Buyer contact
// fields are absent by construction, so phone redaction cannot regress
// through a serializer change.
type LookupOrderResponse struct {
	ID                string            `json:"id"`
	OrderNo           string            `json:"orderNo"`
	CreatedAt         string            `json:"createdAt"`
	Amount            int64             `json:"amount"`
	Currency          string            `json:"currency"`
	PaymentStatus     string            `json:"paymentStatus"`
	FulfillmentStatus string            `json:"fulfillmentStatus"`
	ShippingCarrier   *string           `json:"shippingCarrier"`
	TrackingNumber    *string           `json:"trackingNumber"`
	Items             []model.OrderItem `json:"items"`
	ShippingZip       string            `json:"shippingZip"`
	ShippingAddr1     string            `json:"shippingAddr1"`
	ShippingAddr2     *string           `json:"shippingAddr2,omitempty"`
}

func toOrderResponse(o *model.Order) OrderResponse {
	return OrderResponse{
		ID:                o.ID,
		OrderNo:           o.OrderNo,
		BuyerName:         o.BuyerName,
		BuyerPhone:        o.BuyerPhone,
		BuyerEmail:        o.BuyerEmail,
		ShippingZip:       o.ShippingZip,
		ShippingAddr1:     o.ShippingAddr1,
		ShippingAddr2:     o.ShippingAddr2,
		ShippingMemo:      o.ShippingMemo,
		Items:             o.Items,
		Amount:            o.Amount,
		Currency:          o.Currency,
		PaymentStatus:     string(o.PaymentStatus),
		FulfillmentStatus: string(o.FulfillmentStatus),
		ShippingCarrier:   o.ShippingCarrier,
		TrackingNumber:    o.TrackingNumber,
		CreatedAt:         o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         o.UpdatedAt.Format(time.RFC3339),
	}
}

func toLookupResponse(o *model.Order) LookupOrderResponse {
	return LookupOrderResponse{
		ID:                o.ID,
		OrderNo:           o.OrderNo,
		CreatedAt:         o.CreatedAt.Format(time.RFC3339),
		Amount:            o.Amount,
		Currency:          o.Currency,
		PaymentStatus:     string(o.PaymentStatus),
		FulfillmentStatus: string(o.FulfillmentStatus),
		ShippingCarrier:   o.ShippingCarrier,
		TrackingNumber:    o.TrackingNumber,
		Items:             o.Items,
		ShippingZip:       o.ShippingZip,
		ShippingAddr1:     o.ShippingAddr1,
		ShippingAddr2:     o.ShippingAddr2,
	}
}

func toItems(reqs []OrderItemRequest) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(reqs))
	for _, it := range reqs {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Qty:       it.Qty,
		})
	}
	return items
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_request", "invalid json"))
	}
	o, err := h.svc.Create(c.Request().Context(), service.CreateOrderInput{
		BuyerName:     req.BuyerName,
		BuyerPhone:    req.BuyerPhone,
		BuyerEmail:    req.BuyerEmail,
		ShippingZip:   req.ShippingZip,
		ShippingAddr1: req.ShippingAddr1,
		ShippingAddr2: req.ShippingAddr2,
		ShippingMemo:  req.ShippingMemo,
		Items:         toItems(req.Items),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrder):
			return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_request", err.Error()))
		case errors.Is(err, service.ErrOrderNoExhausted):
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("order_no_collision", "order number generation kept colliding"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_failed", "failed to save order"))
		}
	}
	return c.JSON(http.StatusOK, CreateOrderResponse{OK: true, OrderID: o.ID, OrderNo: o.OrderNo, Amount: o.Amount})
}

type GuestCheckoutRequest struct {
	Email          *string            `json:"email"`
	BuyerName      string             `json:"buyerName"`
	BuyerPhone     string             `json:"buyerPhone"`
	RecipientName  string             `json:"recipientName"`
	RecipientPhone string             `json:"recipientPhone"`
	Postcode       string             `json:"postcode"`
	Address        string             `json:"address"`
	Address2       *string            `json:"address2"`
	Memo           *string            `json:"memo"`
	Items          []OrderItemRequest `json:"items"`
}

func (h *OrderHandler) CreateGuestDraft(c echo.Context) error {
	var req GuestCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_request", "invalid json"))
	}
	d, err := h.svc.CreateGuestDraft(c.Request().Context(), service.GuestDraftInput{
		Email:          req.Email,
		BuyerName:      req.BuyerName,
		BuyerPhone:     req.BuyerPhone,
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		Postcode:       req.Postcode,
		Address:        req.Address,
		Address2:       req.Address2,
		Memo:           req.Memo,
		Items:          toItems(req.Items),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrder) {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_request", err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_failed", "failed to save draft"))
	}
	return c.JSON(http.StatusOK, map[string]string{"id": d.ID})
}

type GuestDraftResponse struct {
	ID             string            `json:"id"`
	Email          *string           `json:"email,omitempty"`
	BuyerName      string            `json:"buyerName"`
	BuyerPhone     string            `json:"buyerPhone"`
	RecipientName  string            `json:"recipientName"`
	RecipientPhone string            `json:"recipientPhone"`
	Postcode       string            `json:"postcode"`
	Address        string            `json:"address"`
	Address2       *string           `json:"address2,omitempty"`
	Memo           *string           `json:"memo,omitempty"`
	Items          []model.OrderItem `json:"items"`
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Status         string            `json:"status"`
	CreatedAt      string            `json:"createdAt"`
}

func toGuestDraftResponse(d *model.GuestOrderDraft) GuestDraftResponse {
	return GuestDraftResponse{
		ID:             d.ID,
		Email:          d.Email,
		BuyerName:      d.BuyerName,
		BuyerPhone:     d.BuyerPhone,
		RecipientName:  d.RecipientName,
		RecipientPhone: d.RecipientPhone,
		Postcode:       d.Postcode,
		Address:        d.Address,
		Address2:       d.Address2,
		Memo:           d.Memo,
		Items:          d.Items,
		Amount:         d.Amount,
		Currency:       d.Currency,
		Status:         d.Status,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
	}
}

func (h *OrderHandler) GetGuestDraft(c echo.Context) error {
	d, err := h.svc.GetGuestDraft(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "draft not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_failed", "failed to fetch draft"))
	}
	return c.JSON(http.StatusOK, toGuestDraftResponse(d))
}

type LookupRequest struct {
	OrderNo    string `json:"orderNo"`
	PhoneLast4 string `json:"phoneLast4"`
}

type LookupResponse struct {
	OK    bool                `json:"ok"`
	Order LookupOrderResponse `json:"order"`
}

func (h *OrderHandler) Lookup(c echo.Context) error {
	var req LookupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_request", "invalid json"))
	}
	o, err := h.svc.Lookup(c.Request().Context(), req.OrderNo, req.PhoneLast4)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLookup):
			return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_request", "order number and last 4 phone digits are required"))
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order not found"))
		case errors.Is(err, service.ErrPhoneMismatch):
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("not_match", "order and phone do not match"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_failed", "failed to fetch order"))
		}
	}
	return c.JSON(http.StatusOK, LookupResponse{OK: true, Order: toLookupResponse(o)})
}

type MyOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	email, _ := c.Get("email").(string)
	if email == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "verified email required"))
	}
	list, err := h.svc.ListByBuyerEmail(c.Request().Context(), email)
	if err != nil {
		// Degrades to an empty history rather than an error page.
		return c.JSON(http.StatusInternalServerError, MyOrdersResponse{Orders: []OrderResponse{}})
	}
	resp := MyOrdersResponse{Orders: make([]OrderResponse, 0, len(list))}
	for i := range list {
		resp.Orders = append(resp.Orders, toOrderResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
