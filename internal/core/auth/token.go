package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenTTL is the lifetime the login flow always passes explicitly.
	AccessTokenTTL = 30 * time.Minute
	// DefaultTokenTTL applies only when Issue is called with a zero ttl.
	// Login never does, so this path is not reached end-to-end.
	DefaultTokenTTL = 15 * time.Minute
)

var (
	// ErrInvalidToken is the only error Validate returns. Bad signatures,
	// expired tokens and missing subjects are deliberately not told apart.
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("token signing secret is empty")
)

var signingMethod = jwt.SigningMethodHS256

// TokenService issues and validates HS256 bearer tokens carrying a subject
// and an expiry. It holds no per-token state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService returns a TokenService signing with secret.
func NewTokenService(secret []byte) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenService{secret: key, now: time.Now}, nil
}

// WithClock returns a copy of s reading the current time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	return &TokenService{secret: s.secret, now: now}
}

// Issue signs a token for subject that expires ttl from now. A zero or
// negative ttl means DefaultTokenTTL.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(s.now().Add(ttl)),
	}
	return jwt.NewWithClaims(signingMethod, claims).SignedString(s.secret)
}

// Validate verifies the signature and expiry of token and returns its
// subject. The expiry check happens inside the parse call; a token is
// valid strictly before exp and invalid from exp onwards.
func (s *TokenService) Validate(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *TokenService) keyFunc(*jwt.Token) (any, error) {
	return s.secret, nil
}
