package entity

import (
	"time"
)

// User represents a registered user in the system
type User struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	Username     string       `bson:"username" json:"username"`
	Email        string       `bson:"email" json:"email"`
	PasswordHash string       `bson:"password_hash" json:"-"`
	DisplayName  string       `bson:"display_name" json:"display_name"`
	Role         UserRole     `bson:"role" json:"role"`
	IsActive     bool         `bson:"is_active" json:"is_active"`
	IsVerified   bool         `bson:"is_verified" json:"is_verified"`
	AuthProvider AuthProvider `bson:"auth_provider" json:"auth_provider"`
	AvatarURL    *string      `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CreatedAt    time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `bson:"updated_at" json:"updated_at"`
}

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleStudent UserRole = "student"
)

func DefaultRole() UserRole {
	return UserRoleStudent
}

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleStudent
}

// AuthProvider records how the account was created.
type AuthProvider string

const (
	AuthProviderPassword AuthProvider = "password"
	AuthProviderGoogle   AuthProvider = "google"
	AuthProviderGitHub   AuthProvider = "github"
)

// Name returns the display name, falling back to the username.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
