package ports

import (
	"time"

	"github.com/gigforge/marketplace/internal/core/domain"
)

// SessionIssuer mints signed session tokens.
type SessionIssuer interface {
	Issue(user *domain.User, rememberMe bool) (token string, expiresAt time.Time, err error)
}

// SessionReader verifies a token's signature and expiry without touching the store.
type SessionReader interface {
	Parse(token string) (*domain.Session, error)
}
