package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hyelabel/shop-backend/internal/config"
	"github.com/hyelabel/shop-backend/internal/handler"
	appmw "github.com/hyelabel/shop-backend/internal/middleware"
	"github.com/hyelabel/shop-backend/internal/orderno"
	"github.com/hyelabel/shop-backend/internal/repository"
	"github.com/hyelabel/shop-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

// New wires the full HTTP surface. All dependencies are constructed by
// the caller and injected once per process; nothing here reaches for
// globals. authMw and rdb may be nil, which disables member endpoints
// and the lookup rate limiter respectively.
func New(db *gorm.DB, rdb *rd.Client, authMw *appmw.AuthMiddleware, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", appmw.AdminHeader},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	orderRepo := repository.NewOrderRepository(db)
	guestRepo := repository.NewGuestOrderRepository(db)
	addressRepo := repository.NewAddressRepository(db)

	orderSvc := service.NewOrderService(orderRepo, guestRepo, orderno.New())
	addressSvc := service.NewAddressService(addressRepo)

	orderHandler := handler.NewOrderHandler(orderSvc)
	adminHandler := handler.NewAdminHandler(orderSvc)
	addressHandler := handler.NewAddressHandler(addressSvc)

	adminGuard := appmw.NewAdminGuard(cfg.AdminPassword)
	lookupLimit := appmw.RateLimitByIP(rdb, cfg.LookupRateLimit, time.Duration(cfg.LookupRateWindowSec)*time.Second)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")
	api.POST("/orders", orderHandler.Create)
	api.POST("/checkout/guest", orderHandler.CreateGuestDraft)
	api.GET("/checkout/guest/:id", orderHandler.GetGuestDraft)
	api.POST("/orders/lookup", orderHandler.Lookup, lookupLimit)

	if authMw != nil {
		accountHandler := handler.NewAccountHandler(addressRepo, authMw.Client())
		api.GET("/orders/me", orderHandler.ListMine, authMw.RequireAuth)
		api.GET("/me/addresses", addressHandler.List, authMw.RequireAuth)
		api.POST("/me/addresses", addressHandler.Create, authMw.RequireAuth)
		api.DELETE("/me/addresses/:id", addressHandler.Delete, authMw.RequireAuth)
		api.DELETE("/me", accountHandler.Delete, authMw.RequireAuth)
	}

	admin := api.Group("/admin", adminGuard.Require)
	admin.GET("/orders", adminHandler.List)
	admin.GET("/orders/:key", adminHandler.Get)
	admin.PATCH("/orders/:key", adminHandler.Update)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
