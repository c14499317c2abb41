package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frcparts/components-api/internal/core/domain"
)

func teamPtr(s string) *string { return &s }

func TestCheckTeamAccess(t *testing.T) {
	cases := []struct {
		name     string
		user     *domain.User
		resource string
		allowed  bool
	}{
		{"same team", &domain.User{TeamID: teamPtr("teamA")}, "teamA", true},
		{"other team", &domain.User{TeamID: teamPtr("teamA")}, "teamB", false},
		{"case differs", &domain.User{TeamID: teamPtr("teamA")}, "TEAMA", false},
		{"no team", &domain.User{TeamID: nil}, "teamA", false},
		{"no team, empty resource", &domain.User{TeamID: nil}, "", false},
		{"empty team matches only empty", &domain.User{TeamID: teamPtr("")}, "", true},
		{"admin role is not an override", &domain.User{TeamID: teamPtr("teamA"), Role: domain.RoleAdmin}, "teamB", false},
		{"nil user", nil, "teamA", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTeamAccess(tc.user, tc.resource)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}
