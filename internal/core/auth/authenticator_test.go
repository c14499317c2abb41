package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frcparts/components-api/internal/core/domain"
)

type stubFinder struct {
	users map[string]*domain.User
	err   error
	calls int
}

func (f *stubFinder) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func setupAuthenticator(t *testing.T, users ...*domain.User) (*Authenticator, *TokenService, *stubFinder) {
	t.Helper()
	tokens := newTestTokens(t, "test-secret")
	finder := &stubFinder{users: map[string]*domain.User{}}
	for _, u := range users {
		finder.users[u.Username] = u
	}
	return NewAuthenticator(tokens, finder), tokens, finder
}

func TestAuthenticator_ActiveUser(t *testing.T) {
	a, tokens, _ := setupAuthenticator(t, &domain.User{ID: 1, Username: "alice", IsActive: true, TeamID: teamPtr("teamA")})

	tok, err := tokens.Issue("alice", AccessTokenTTL)
	require.NoError(t, err)

	user, err := a.Authenticate(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "teamA", *user.TeamID)
}

func TestAuthenticator_ReloadsUserEveryCall(t *testing.T) {
	alice := &domain.User{ID: 1, Username: "alice", IsActive: true}
	a, tokens, finder := setupAuthenticator(t, alice)

	tok, err := tokens.Issue("alice", AccessTokenTTL)
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), tok)
	require.NoError(t, err)

	finder.users["alice"].IsActive = false

	_, err = a.Authenticate(context.Background(), tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 2, finder.calls)
}

func TestAuthenticator_RejectionsCollapse(t *testing.T) {
	a, tokens, _ := setupAuthenticator(t,
		&domain.User{ID: 1, Username: "alice", IsActive: true},
		&domain.User{ID: 2, Username: "bob", IsActive: false},
	)

	valid, err := tokens.Issue("alice", AccessTokenTTL)
	require.NoError(t, err)
	inactive, err := tokens.Issue("bob", AccessTokenTTL)
	require.NoError(t, err)
	orphan, err := tokens.Issue("carol", AccessTokenTTL)
	require.NoError(t, err)
	expired, err := tokens.WithClock(fixedClock(issuedAt.Add(-time.Hour))).Issue("alice", AccessTokenTTL)
	require.NoError(t, err)
	forged, err := newTestTokens(t, "other-secret").Issue("alice", AccessTokenTTL)
	require.NoError(t, err)

	cases := map[string]string{
		"empty":            "",
		"garbage":          "garbage",
		"truncated":        valid[:len(valid)-3],
		"expired":          expired,
		"forged":           forged,
		"inactive account": inactive,
		"deleted account":  orphan,
	}

	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			user, err := a.Authenticate(context.Background(), tok)
			assert.Nil(t, user)
			assert.True(t, errors.Is(err, domain.ErrUnauthorized), "got %v", err)
		})
	}
}

func TestAuthenticator_StoreErrorPropagates(t *testing.T) {
	a, tokens, finder := setupAuthenticator(t)
	finder.err = errors.New("mongo unavailable")

	tok, err := tokens.Issue("alice", AccessTokenTTL)
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), tok)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
	assert.ErrorIs(t, err, finder.err)
}
