package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/frcparts/components-api/internal/core/domain"
)

// UserFinder is the slice of the credential store the authenticator needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TokenValidator returns the subject of a valid token.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// Authenticator rebuilds the caller's identity from a bearer token on every
// request. There is no session cache: each call validates the token and
// reloads the user row.
type Authenticator struct {
	tokens TokenValidator
	users  UserFinder
}

func NewAuthenticator(tokens TokenValidator, users UserFinder) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate returns the active user the token was issued to. Every
// token or account problem comes back as domain.ErrUnauthorized; only a
// failing store produces a different error.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	username, err := a.tokens.Validate(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
