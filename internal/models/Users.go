package models

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

// User is owned by the external directory; the engine never mutates one.
type User struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Role     UserRole `json:"role" yaml:"role"`
	Online   bool     `json:"online" yaml:"online"`
	LastSeen string   `json:"lastSeen,omitempty" yaml:"last_seen"`
}
