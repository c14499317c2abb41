package auth

import "github.com/frcparts/components-api/internal/core/domain"

// CheckTeamAccess allows user to touch a resource owned by teamID only when
// the user belongs to exactly that team. The comparison is case-sensitive
// and the user's role is not consulted.
func CheckTeamAccess(user *domain.User, teamID string) error {
	if !user.HasTeam() || *user.TeamID != teamID {
		return domain.ErrForbidden
	}
	return nil
}
