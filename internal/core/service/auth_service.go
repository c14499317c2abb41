package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/frcparts/components-api/internal/api/metrics"
	"github.com/frcparts/components-api/internal/core/auth"
	"github.com/frcparts/components-api/internal/core/domain"
	"github.com/frcparts/components-api/internal/core/ports"
)

// AuthService implements registration, login and self-deactivation.
type AuthService struct {
	repo   ports.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	log    zerolog.Logger

	// dummyHash is verified against when the username is unknown so both
	// login failures cost one bcrypt comparison.
	dummyHash string
}

func NewAuthService(repo ports.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService, log zerolog.Logger) *AuthService {
	dummy, err := hasher.Hash("frc-components-dummy-password")
	if err != nil {
		log.Warn().Err(err).Msg("could not prepare dummy password hash")
	}
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log, dummyHash: dummy}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.ErrInvalidInput
		}
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		TeamID:       in.TeamID,
		Role:         domain.RoleMember,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login checks the credentials and issues an access token valid for
// auth.AccessTokenTTL. Unknown usernames and wrong passwords both return
// domain.ErrInvalidCredentials. Account activity is not checked here; an
// inactive account's token is rejected on first use.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user, password)
	}

	token, err := s.tokens.Issue(user.Username, auth.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, nil
}

// upgradeHash replaces an outdated hash. Failure only costs the upgrade.
func (s *AuthService) upgradeHash(ctx context.Context, user *domain.User, password string) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("password rehash failed")
		return
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to store upgraded password hash")
		return
	}
	s.log.Info().Int64("user_id", user.ID).Msg("password hash upgraded")
}

// Deactivate marks the caller's own account inactive.
func (s *AuthService) Deactivate(ctx context.Context, user *domain.User) error {
	if err := s.repo.SetActive(ctx, user.ID, false); err != nil {
		return fmt.Errorf("deactivate: %w", err)
	}
	s.log.Info().Int64("user_id", user.ID).Msg("user deactivated")
	return nil
}
