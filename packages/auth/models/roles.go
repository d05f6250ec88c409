package models

// Team member roles.
const (
	RoleAdmin = "admin"
	RoleCoach = "coach"
)

// Membership statuses. Only approved members act on team data.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// GetAllRoles lists the roles a member can hold.
func GetAllRoles() []string {
	return []string{
		RoleAdmin,
		RoleCoach,
	}
}

func IsValidRole(role string) bool {
	for _, r := range GetAllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
