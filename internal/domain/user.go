package domain

import "time"

// Role is the privilege tier carried by a user and inside issued tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is a known tier.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the stored account record. Email is the login key, unique per user.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
