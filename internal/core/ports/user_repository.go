package ports

import (
	"context"

	"github.com/gigforge/marketplace/internal/core/domain"
)

// ProfileFields is the whitelisted set of fields the profile edit path may touch.
// A nil pointer leaves the stored value untouched.
type ProfileFields struct {
	Name      *string
	Bio       *string
	Skills    *[]string
	Portfolio *[]domain.PortfolioItem
}

// IsEmpty reports whether no field is set.
func (f ProfileFields) IsEmpty() bool {
	return f.Name == nil && f.Bio == nil && f.Skills == nil && f.Portfolio == nil
}

// UserRepository is the Credential Store. Email uniqueness is enforced by the
// store itself: Create returns domain.ErrUserExists on a duplicate.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateProfile applies fields and returns the updated record.
	UpdateProfile(ctx context.Context, id string, fields ProfileFields) (*domain.User, error)
	// TopByXP returns up to limit users ordered by XP descending.
	TopByXP(ctx context.Context, limit int) ([]*domain.User, error)
}
