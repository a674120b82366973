package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigforge/marketplace/internal/api/metrics"
	"github.com/gigforge/marketplace/internal/core/domain"
	"github.com/gigforge/marketplace/internal/core/ports"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get returns the authenticated user's profile.
//
// @Summary      Current profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /me [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), s.UserID)
	if err != nil {
		return sessionUserError(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update changes name, bio, skills and portfolio. Other fields in the body
// are ignored.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /me [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.ProfileUpdatesTotal.WithLabelValues("invalid").Inc()
		return err
	}

	user, err := h.service.Update(c.Request().Context(), s.UserID, req.toFields())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.ProfileUpdatesTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.ProfileUpdatesTotal.WithLabelValues("error").Inc()
		}
		return sessionUserError(err)
	}

	metrics.ProfileUpdatesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// sessionUserError turns a missing account behind a valid token into 401.
func sessionUserError(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrUnauthenticated
	}
	return err
}
