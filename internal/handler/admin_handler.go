package handler

import (
	"errors"
	"net/http"

	"github.com/hyelabel/shop-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// adminListLimit bounds the fulfillment console listing.
const adminListLimit = 200

type AdminHandler struct {
	svc service.OrderService
}

func NewAdminHandler(svc service.OrderService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type AdminOrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

func (h *AdminHandler) List(c echo.Context) error {
	list, err := h.svc.ListRecent(c.Request().Context(), adminListLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_failed", "failed to fetch orders"))
	}
	resp := AdminOrderListResponse{Orders: make([]OrderResponse, 0, len(list))}
	for i := range list {
		resp.Orders = append(resp.Orders, toOrderResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) Get(c echo.Context) error {
	o, err := h.svc.GetByIdentifier(c.Request().Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_failed", "failed to fetch order"))
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *AdminHandler) Update(c echo.Context) error {
	var patch service.OrderPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_request", "invalid json"))
	}
	o, err := h.svc.AdminUpdate(c.Request().Context(), c.Param("key"), patch)
	if err != nil {
		return h.updateError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *AdminHandler) updateError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order not found"))
	case errors.Is(err, service.ErrInvalidPaymentStatus):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_payment_status", err.Error()))
	case errors.Is(err, service.ErrInvalidFulfillmentStatus):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_fulfillment_status", err.Error()))
	case errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_transition", err.Error()))
	case errors.Is(err, service.ErrShipmentRequiresPaid):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("shipment_requires_paid", err.Error()))
	case errors.Is(err, service.ErrTrackingRequired):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("tracking_required", err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_failed", "failed to update order"))
	}
}
