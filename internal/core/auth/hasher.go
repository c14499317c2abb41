package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 12

// currentPrefix is the identifier x/crypto/bcrypt writes into new hashes.
const currentPrefix = "$2a$"

// PasswordHasher hashes and verifies passwords with bcrypt. The salt and
// cost are embedded in every hash string.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher producing hashes at the given cost.
// Out-of-range costs fall back to DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted bcrypt hash of plaintext. Passwords longer than
// 72 bytes are rejected by bcrypt and returned as an error.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a
// mismatch, not an error.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// NeedsRehash reports whether a hash that verified should be replaced:
// it was made with a lower cost or under another $2x$ identifier.
func (h *PasswordHasher) NeedsRehash(hash string) bool {
	if !strings.HasPrefix(hash, currentPrefix) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost < h.cost
}
