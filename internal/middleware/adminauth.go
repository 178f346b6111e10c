package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/hyelabel/shop-backend/internal/handler"
	"github.com/labstack/echo/v4"
)

// AdminHeader carries the shared admin secret on every console request.
const AdminHeader = "X-Admin-Password"

// AdminGuard gates the whole admin surface behind one shared secret.
// There is no per-admin identity; the deployment assumes a handful of
// trusted operators.
type AdminGuard struct {
	secret string
}

func NewAdminGuard(secret string) *AdminGuard {
	return &AdminGuard{secret: secret}
}

func (g *AdminGuard) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		supplied := c.Request().Header.Get(AdminHeader)
		if supplied == "" || g.secret == "" ||
			subtle.ConstantTimeCompare([]byte(supplied), []byte(g.secret)) != 1 {
			return c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized", "admin password mismatch"))
		}
		return next(c)
	}
}
