package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	TokenTypeRefresh       TokenType = "refresh"
	TokenTypePasswordReset TokenType = "password_reset"
)

// Token is a stored, hashed credential (refresh or password reset).
type Token struct {
	ID        string
	UserID    string
	TokenType TokenType
	TokenHash string
	Verifier  string
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoke    bool
}

// Claims carries the identity extracted from a parsed JWT.
type Claims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
