package domain

import "time"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User models an account that can log in. Role is stored but no
// authorization decision reads it.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	TeamID       *string   `json:"team_id"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasTeam reports whether the user is attached to a team.
func (u *User) HasTeam() bool {
	return u != nil && u.TeamID != nil
}
