package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gigforge/marketplace/internal/api/metrics"
	"github.com/gigforge/marketplace/internal/core/domain"
)

// RequireRole lets the request through only when the session role is one of
// roles. A mismatch redirects to the policy's landing page instead of answering
// 403, so role-gated pages are not revealed. Unauthenticated callers go to login.
func RequireRole(policy GuardPolicy, roles ...domain.Role) echo.MiddlewareFunc {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	label := strings.Join(names, ",")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := SessionFrom(c)
			if s == nil {
				return c.Redirect(http.StatusTemporaryRedirect, policy.LoginURL(c.Request().URL.Path))
			}
			if !s.HasRole(roles...) {
				metrics.RoleRedirectsTotal.WithLabelValues(label).Inc()
				return c.Redirect(http.StatusTemporaryRedirect, policy.LandingPath)
			}
			return next(c)
		}
	}
}
