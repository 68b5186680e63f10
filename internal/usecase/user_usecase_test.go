package usecase_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	user, err := env.users.Register(ctx, "alice", "Alice@Example.com", "Password123!", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, entity.UserRoleStudent, user.Role)
	assert.True(t, user.IsActive)
	assert.Equal(t, entity.AuthProviderPassword, user.AuthProvider)
	assert.NotEqual(t, "Password123!", user.PasswordHash)

	_, err = env.users.Register(ctx, "alice2", "alice@example.com", "Password123!", "")
	assert.ErrorIs(t, err, usecase.ErrUserExists)
	_, err = env.users.Register(ctx, "alice", "other@example.com", "Password123!", "")
	assert.ErrorIs(t, err, usecase.ErrUserExists)
	_, err = env.users.Register(ctx, "bob", "bob@example.com", "weak", "")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	_, err = env.users.Register(ctx, "bob", "not-an-email", "Password123!", "")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestLogin_ByEmailOrUsername(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.registerStudent(t, "alice")

	for _, identifier := range []string{"alice", "alice@example.com"} {
		user, access, refresh, err := env.users.Login(ctx, identifier, "Password123!")
		require.NoError(t, err, identifier)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	}

	_, _, _, err := env.users.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	_, _, _, err = env.users.Login(ctx, "nobody", "Password123!")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestDeactivatedUserIsLockedOut(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	user := env.registerStudent(t, "alice")
	_, access, refresh, err := env.users.Login(ctx, "alice", "Password123!")
	require.NoError(t, err)

	_, err = env.users.SetActive(ctx, user.ID, false)
	require.NoError(t, err)

	_, err = env.users.Authenticate(ctx, access)
	assert.ErrorIs(t, err, usecase.ErrAccountInactive)
	_, _, _, err = env.users.Login(ctx, "alice", "Password123!")
	assert.ErrorIs(t, err, usecase.ErrAccountInactive)
	_, _, err = env.users.RefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)
}

func TestRefreshTokenRotation(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.registerStudent(t, "alice")
	_, _, refresh, err := env.users.Login(ctx, "alice", "Password123!")
	require.NoError(t, err)

	access2, refresh2, err := env.users.RefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEqual(t, refresh, refresh2)

	// the old token no longer matches the stored hash
	_, _, err = env.users.RefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.registerStudent(t, "alice")
	_, _, refresh, err := env.users.Login(ctx, "alice", "Password123!")
	require.NoError(t, err)

	require.NoError(t, env.users.Logout(ctx, refresh))
	_, _, err = env.users.RefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)

	assert.NoError(t, env.users.Logout(ctx, "garbage"))
}

func TestForgotAndResetPassword(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.registerStudent(t, "alice")

	require.NoError(t, env.users.ForgotPassword(ctx, "nobody@example.com"))
	_, sent := env.mailer.Last()
	assert.False(t, sent)

	require.NoError(t, env.users.ForgotPassword(ctx, "alice@example.com"))
	mail, sent := env.mailer.Last()
	require.True(t, sent)
	assert.Equal(t, "alice@example.com", mail.To)

	link := mail.Body[strings.Index(mail.Body, "http"):]
	link = strings.Fields(link)[0]
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	verifier, token := parsed.Query().Get("verifier"), parsed.Query().Get("token")

	err = env.users.ResetPassword(ctx, verifier, "wrong-token", "NewPassword1!")
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)
	err = env.users.ResetPassword(ctx, verifier, token, "weak")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	require.NoError(t, env.users.ResetPassword(ctx, verifier, token, "NewPassword1!"))
	_, _, _, err = env.users.Login(ctx, "alice", "NewPassword1!")
	assert.NoError(t, err)

	// tokens are single use
	err = env.users.ResetPassword(ctx, verifier, token, "Another1!x")
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)
}

func TestLoginWithOAuth(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	user, access, _, err := env.users.LoginWithOAuth(ctx, entity.AuthProviderGitHub, "Octo Cat", "Octo@GitHub.com")
	require.NoError(t, err)
	assert.Equal(t, "octo@github.com", user.Email)
	assert.Equal(t, entity.AuthProviderGitHub, user.AuthProvider)
	assert.NotEmpty(t, access)

	again, _, _, err := env.users.LoginWithOAuth(ctx, entity.AuthProviderGitHub, "Octo Cat", "octo@github.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	// social accounts cannot use password login
	_, _, _, err = env.users.Login(ctx, "octo@github.com", "")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	_, _, _, err = env.users.LoginWithOAuth(ctx, entity.AuthProviderGoogle, "No Mail", "")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestSetRoleAndUpdateProfile(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	alice := env.registerStudent(t, "alice")
	env.registerStudent(t, "bob")

	_, err := env.users.SetRole(ctx, alice.ID, "owner")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	admin, err := env.users.SetRole(ctx, alice.ID, entity.UserRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleAdmin, admin.Role)

	_, err = env.users.UpdateProfile(ctx, alice.ID, map[string]interface{}{"username": "bob"})
	assert.ErrorIs(t, err, usecase.ErrUserExists)

	updated, err := env.users.UpdateProfile(ctx, alice.ID, map[string]interface{}{
		"display_name": " Alice L ",
		"avatar_url":   "https://cdn.test/a.png",
		"role":         "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice L", updated.DisplayName)
	require.NotNil(t, updated.AvatarURL)

	users, total, err := env.users.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	_, err = env.users.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}
