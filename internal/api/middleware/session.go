package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/gigforge/marketplace/internal/core/domain"
	"github.com/gigforge/marketplace/internal/core/ports"
)

const sessionKey = "session"

// LoadSession verifies the session cookie, if any, and stores the resulting
// session in the context. Missing, expired or tampered tokens leave the request
// unauthenticated; they are never an error here.
func LoadSession(reader ports.SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := sessionToken(c); token != "" {
				if s, err := reader.Parse(token); err == nil {
					SetSession(c, s)
				}
			}
			return next(c)
		}
	}
}

// SetSession attaches a verified session to the request.
func SetSession(c echo.Context, s *domain.Session) {
	c.Set(sessionKey, s)
}

// SessionFrom returns the verified session, or nil when unauthenticated.
func SessionFrom(c echo.Context) *domain.Session {
	s, _ := c.Get(sessionKey).(*domain.Session)
	return s
}

// RequireSession rejects unauthenticated API calls with 401.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if SessionFrom(c) == nil {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
