package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigforge/marketplace/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"invalid input", fmt.Errorf("%w: name is required", domain.ErrInvalidInput), http.StatusBadRequest, `{"error":"invalid input: name is required"}`},
		{"invalid role", fmt.Errorf("%w: %q", domain.ErrInvalidRole, "ADMIN"), http.StatusBadRequest, `{"error":"invalid role: \"ADMIN\""}`},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"invalid credentials"}`},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, `{"error":"authentication required"}`},
		{"conflict", fmt.Errorf("signup: %w", domain.ErrUserExists), http.StatusConflict, `{"error":"email already registered"}`},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, `{"error":"too many login attempts"}`},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, `{"error":"invalid payload"}`},
		{"unexpected", errors.New("mongo: connection refused"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/x", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tc.wantBody {
				t.Fatalf("body = %s, want %s", got, tc.wantBody)
			}
		})
	}
}

func TestHTTPErrorHandler_NoDetailLeak(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("dial tcp 10.0.0.5:27017: secret-host"), c)

	if strings.Contains(rec.Body.String(), "secret-host") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}
