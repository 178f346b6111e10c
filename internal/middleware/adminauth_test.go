package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyelabel/shop-backend/internal/handler"
	"github.com/labstack/echo/v4"
)

func TestAdminGuard(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		supplied string
		wantCode int
	}{
		{"correct password", "s3cret", "s3cret", http.StatusOK},
		{"wrong password", "s3cret", "guess", http.StatusUnauthorized},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"unset secret rejects everything", "", "anything", http.StatusUnauthorized},
		{"unset secret and empty header", "", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tt.supplied != "" {
				req.Header.Set(AdminHeader, tt.supplied)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			guard := NewAdminGuard(tt.secret)
			h := guard.Require(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := h(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("code=%d want=%d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusUnauthorized {
				var resp handler.ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if resp.Error.Code != "unauthorized" {
					t.Fatalf("code=%s want=unauthorized", resp.Error.Code)
				}
			}
		})
	}
}
