package models

import "errors"

// ErrNoMembership means the caller has no approved membership for the team.
var ErrNoMembership = errors.New("no approved team membership")

// AuthContext is the caller's approved team membership, derived again on
// every request and handed explicitly to every team-scoped operation.
type AuthContext struct {
	ProfileID string `json:"profile_id"`
	Email     string `json:"email,omitempty"`
	TeamID    uint   `json:"team_id"`
	Role      string `json:"role"`
}

func (a AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasRole reports whether the caller holds role. Admins hold every role.
func (a AuthContext) HasRole(role string) bool {
	return a.Role == role || a.Role == RoleAdmin
}
