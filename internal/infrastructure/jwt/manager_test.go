package jwt

import (
	"testing"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessRoundTrip(t *testing.T) {
	svc := NewJWTService(NewJWTManager("secret", time.Minute, time.Hour))

	token, err := svc.GenerateAccessToken("user-1", entity.UserRoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, entity.UserRoleAdmin, claims.Role)
}

func TestJWTService_KindsAreNotInterchangeable(t *testing.T) {
	svc := NewJWTService(NewJWTManager("secret", time.Minute, time.Hour))

	refresh, err := svc.GenerateRefreshToken("user-1", entity.UserRoleStudent)
	require.NoError(t, err)
	_, err = svc.ParseAccessToken(refresh)
	assert.Error(t, err)

	access, err := svc.GenerateAccessToken("user-1", entity.UserRoleStudent)
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(access)
	assert.Error(t, err)

	claims, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleStudent, claims.Role)
}

func TestJWTService_RejectsExpiredAndForeignTokens(t *testing.T) {
	expired := NewJWTService(NewJWTManager("secret", -time.Minute, time.Hour))
	token, err := expired.GenerateAccessToken("user-1", entity.UserRoleStudent)
	require.NoError(t, err)

	svc := NewJWTService(NewJWTManager("secret", time.Minute, time.Hour))
	_, err = svc.ParseAccessToken(token)
	assert.Error(t, err)

	other := NewJWTService(NewJWTManager("other-secret", time.Minute, time.Hour))
	foreign, err := other.GenerateAccessToken("user-1", entity.UserRoleStudent)
	require.NoError(t, err)
	_, err = svc.ParseAccessToken(foreign)
	assert.Error(t, err)
}

func TestJWTService_RefreshTokensAreUnique(t *testing.T) {
	svc := NewJWTService(NewJWTManager("secret", time.Minute, time.Hour))
	a, err := svc.GenerateRefreshToken("user-1", entity.UserRoleStudent)
	require.NoError(t, err)
	b, err := svc.GenerateRefreshToken("user-1", entity.UserRoleStudent)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
