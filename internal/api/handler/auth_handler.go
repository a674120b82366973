package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigforge/marketplace/internal/api/metrics"
	"github.com/gigforge/marketplace/internal/api/middleware"
	"github.com/gigforge/marketplace/internal/core/domain"
	"github.com/gigforge/marketplace/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	limiter     ports.LoginLimiter
	cookie      middleware.SessionCookie
	log         zerolog.Logger
}

// NewAuthHandler wires the auth endpoints. limiter may be nil to disable
// login throttling.
func NewAuthHandler(authService ports.AuthService, limiter ports.LoginLimiter, cookie middleware.SessionCookie, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter, cookie: cookie, log: log}
}

// Signup creates a new account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(signupResult(err)).Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, signupResponse{Message: "user created", User: toUserResponse(user)})
}

func signupResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidRole):
		return "invalid"
	default:
		return "error"
	}
}

// Login verifies credentials and sets the session cookie.
//
// Every credential failure, including a malformed body, yields the same
// 401 response.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return domain.ErrInvalidCredentials
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return domain.ErrInvalidCredentials
	}

	ctx := c.Request().Context()
	key := c.RealIP() + ":" + domain.NormalizeEmail(req.Email)

	if h.limiter != nil {
		allowed, retryAfter, err := h.limiter.Allow(ctx, key)
		if err != nil {
			h.log.Warn().Err(err).Msg("login throttle unavailable")
		} else if !allowed {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			return domain.ErrTooManyAttempts
		}
	}

	res, err := h.authService.Login(ctx, ports.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			h.recordFailure(c, key)
			return domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	if h.limiter != nil {
		if err := h.limiter.Reset(ctx, key); err != nil {
			h.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.cookie.Write(c, res.Token, res.ExpiresAt)
	return c.JSON(http.StatusOK, loginResponse{User: toUserResponse(res.User), ExpiresAt: res.ExpiresAt})
}

func (h *AuthHandler) recordFailure(c echo.Context, key string) {
	if h.limiter == nil {
		return
	}
	if err := h.limiter.RecordFailure(c.Request().Context(), key); err != nil {
		h.log.Warn().Err(err).Msg("login throttle record failed")
	}
}

// Logout clears the session cookie. The token itself stays valid until it
// expires.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookie.Clear(c)
	return c.NoContent(http.StatusNoContent)
}
