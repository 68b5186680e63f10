package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
	issuer           = "learnify"
)

// CustomClaims are the signed claims of both token kinds. Subject holds the user id.
type CustomClaims struct {
	Role string `json:"role"`
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens.
type JWTManager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewJWTManager(secret string, accessExpiry, refreshExpiry time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), accessExpiry: accessExpiry, refreshExpiry: refreshExpiry}
}

func (m *JWTManager) sign(kind, tokenID, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		Role: role,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

func (m *JWTManager) GenerateAccessToken(userID, role string) (string, error) {
	return m.sign(tokenKindAccess, "", userID, role, m.accessExpiry)
}

// GenerateRefreshToken issues a refresh token; tokenID makes every token unique.
func (m *JWTManager) GenerateRefreshToken(tokenID, userID, role string) (string, error) {
	return m.sign(tokenKindRefresh, tokenID, userID, role, m.refreshExpiry)
}

func (m *JWTManager) verify(tokenStr, kind string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("expected %s token, got %q", kind, claims.Kind)
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// VerifyToken validates an access token.
func (m *JWTManager) VerifyToken(tokenStr string) (*CustomClaims, error) {
	return m.verify(tokenStr, tokenKindAccess)
}

func (m *JWTManager) VerifyRefreshToken(tokenStr string) (*CustomClaims, error) {
	return m.verify(tokenStr, tokenKindRefresh)
}
