package handler

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/hyelabel/shop-backend/internal/repository"
	"github.com/labstack/echo/v4"
)

// AccountHandler removes a member's stored data and then the identity
// itself. Orders are kept for bookkeeping; only the address book is
// wiped before the auth user is deleted.
type AccountHandler struct {
	addresses  repository.AddressRepository
	authClient *auth.Client
}

func NewAccountHandler(addresses repository.AddressRepository, authClient *auth.Client) *AccountHandler {
	return &AccountHandler{addresses: addresses, authClient: authClient}
}

func (h *AccountHandler) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	if h.authClient == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("auth_unavailable", "identity provider not configured"))
	}
	ctx := c.Request().Context()
	if err := h.addresses.DeleteAllForUser(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("storage_failed", "failed to remove member data"))
	}
	if err := h.authClient.DeleteUser(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("auth_delete_failed", "failed to delete account"))
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
