package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gigforge/marketplace/internal/core/domain"
	"github.com/gigforge/marketplace/internal/core/service"
)

const testSecret = "middleware-test-secret-0123456789"

func testSessions() *service.SessionManager {
	return service.NewSessionManager(testSecret, time.Hour, 24*time.Hour)
}

func issueToken(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	token, _, err := testSessions().Issue(&domain.User{ID: id, Role: role}, false)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// newRequest builds an echo context for method/target, optionally carrying a
// session cookie under cookieName.
func newRequest(e *echo.Echo, method, target, cookieName, token string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}
