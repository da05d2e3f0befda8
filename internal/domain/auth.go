package domain

import "fmt"

// Role is the authorization level carried in a session token.
type Role string

const (
	RoleUser  Role = "User"
	RoleCoach Role = "Coach"
	RoleAdmin Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCoach, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts a wire value into a Role.
func ParseRole(value string) (Role, error) {
	role := Role(value)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", value)
	}
	return role, nil
}

// ResourceKind names a resource type that exposes an owner.
type ResourceKind string

const (
	ResourceUser         ResourceKind = "user"
	ResourceWorkout      ResourceKind = "workout"
	ResourcePost         ResourceKind = "post"
	ResourceComment      ResourceKind = "comment"
	ResourceNutritionLog ResourceKind = "nutrition_log"
)
