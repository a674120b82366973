package ports

import (
	"context"

	"github.com/gigforge/marketplace/internal/core/domain"
)

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, fields ProfileFields) (*domain.User, error)
}
