package ports

import (
	"context"
	"time"

	"github.com/gigforge/marketplace/internal/core/domain"
)

// SignupInput carries the raw signup form.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginResult is a verified identity plus the session token minted for it.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}
