package ports

import (
	"context"

	"github.com/frcparts/components-api/internal/core/domain"
)

// RegisterInput carries a new account. TeamID is optional.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	TeamID   *string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed access token for valid credentials.
	Login(ctx context.Context, username, password string) (string, error)
	Deactivate(ctx context.Context, user *domain.User) error
}

// Authenticator resolves a bearer token to the active user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
