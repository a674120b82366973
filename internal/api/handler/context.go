package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/gigforge/marketplace/internal/api/middleware"
	"github.com/gigforge/marketplace/internal/core/domain"
)

// ctxSession returns the verified session or ErrUnauthenticated. Handlers call
// it even behind RequireSession so they never run on a missing identity.
func ctxSession(c echo.Context) (*domain.Session, error) {
	s := middleware.SessionFrom(c)
	if s == nil || s.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s, nil
}
