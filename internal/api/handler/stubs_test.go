package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gigforge/marketplace/internal/api/middleware"
	"github.com/gigforge/marketplace/internal/core/domain"
	"github.com/gigforge/marketplace/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	loginFn  func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

type stubLimiter struct {
	allowed    bool
	retryAfter time.Duration
	allowErr   error

	failures []string
	resets   []string
}

func (l *stubLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return l.allowed, l.retryAfter, l.allowErr
}

func (l *stubLimiter) RecordFailure(_ context.Context, key string) error {
	l.failures = append(l.failures, key)
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, key string) error {
	l.resets = append(l.resets, key)
	return nil
}

type stubProfileService struct {
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn func(ctx context.Context, id string, f ports.ProfileFields) (*domain.User, error)
}

func (s *stubProfileService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubProfileService) Update(ctx context.Context, id string, f ports.ProfileFields) (*domain.User, error) {
	return s.updateFn(ctx, id, f)
}

type stubLeaderboard struct {
	gotLimit int
	entries  []domain.LeaderboardEntry
	err      error
}

func (s *stubLeaderboard) Refresh(context.Context) error { return nil }

func (s *stubLeaderboard) Top(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.gotLimit = limit
	return s.entries, s.err
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context, id string, role domain.Role) {
	middleware.SetSession(c, &domain.Session{UserID: id, Role: role, ExpiresAt: time.Now().Add(time.Hour)})
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:           "665f1c2e9b1d4a0012345678",
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         domain.RoleFreelancer,
		Profile:      domain.NewProfile(),
	}
}
