package ports

import (
	"context"

	"github.com/frcparts/components-api/internal/core/domain"
)

// UserRepository is the credential store. Username and email uniqueness is
// enforced here; lookups are exact matches and return domain.ErrUserNotFound
// when no row matches.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create assigns ID and returns the stored user, or domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	SetActive(ctx context.Context, id int64, active bool) error
}
