package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/hyelabel/shop-backend/internal/model"
	"github.com/hyelabel/shop-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	svc service.AddressService
}

func NewAddressHandler(svc service.AddressService) *AddressHandler {
	return &AddressHandler{svc: svc}
}

type AddressResponse struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	RecipientName string  `json:"recipientName"`
	Phone         string  `json:"phone"`
	Postcode      string  `json:"postcode"`
	Address       string  `json:"address"`
	Address2      *string `json:"address2,omitempty"`
	IsDefault     bool    `json:"isDefault"`
	CreatedAt     string  `json:"createdAt"`
}

func toAddressResponse(a *model.Address) AddressResponse {
	return AddressResponse{
		ID:            a.ID,
		Label:         a.Label,
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Postcode:      a.Postcode,
		Address:       a.Address,
		Address2:      a.Address2,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}

func (h *AddressHandler) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.List(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_failed", "failed to fetch addresses"))
	}
	resp := make([]AddressResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toAddressResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type CreateAddressRequest struct {
	Label         string  `json:"label"`
	RecipientName string  `json:"recipientName"`
	Phone         string  `json:"phone"`
	Postcode      string  `json:"postcode"`
	Address       string  `json:"address"`
	Address2      *string `json:"address2"`
	IsDefault     bool    `json:"isDefault"`
}

func (h *AddressHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req CreateAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_request", "invalid json"))
	}
	a, err := h.svc.Create(c.Request().Context(), uid, service.CreateAddressInput{
		Label:         req.Label,
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		Postcode:      req.Postcode,
		Address:       req.Address,
		Address2:      req.Address2,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrder) {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_request", err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_failed", "failed to save address"))
	}
	return c.JSON(http.StatusCreated, toAddressResponse(a))
}

func (h *AddressHandler) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	if err := h.svc.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "address not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_failed", "failed to delete address"))
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
