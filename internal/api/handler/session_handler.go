package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gigforge/marketplace/internal/api/middleware"
	"github.com/gigforge/marketplace/internal/core/domain"
)

// SessionHandler reports the caller's session state to front-end code.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Current never fails with 401; an anonymous caller gets status
// "unauthenticated". With ?role=A,B the response also says whether the
// session role is one of them.
//
// @Summary      Session state
// @Tags         auth
// @Produce      json
// @Param        role  query     string  false  "Comma-separated roles to check"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	var required []domain.Role
	if raw := c.QueryParam("role"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			r, err := domain.ParseRole(part)
			if err != nil {
				return err
			}
			required = append(required, r)
		}
	}

	s := middleware.SessionFrom(c)
	if s == nil {
		resp := sessionResponse{Status: "unauthenticated"}
		if required != nil {
			no := false
			resp.HasRequiredRole = &no
		}
		return c.JSON(http.StatusOK, resp)
	}

	exp := s.ExpiresAt
	resp := sessionResponse{
		Status:    "authenticated",
		User:      &sessionUser{ID: s.UserID, Role: string(s.Role)},
		ExpiresAt: &exp,
	}
	if required != nil {
		ok := s.HasRole(required...)
		resp.HasRequiredRole = &ok
	}
	return c.JSON(http.StatusOK, resp)
}
