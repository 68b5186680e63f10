package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the UserUsecase interface
type MockUserUsecase struct {
	// Control mock behavior
	ShouldFailCreateUser     bool
	ShouldFailLogin          bool
	ShouldFailInactive       bool
	ShouldFailGetByID        bool
	ShouldFailUpdateUser     bool
	ShouldFailForgotPassword bool
	ShouldFailResetPassword  bool
	ShouldFailRefreshToken   bool
	ShouldFailLogout         bool
	ShouldFailAuthenticate   bool
	ShouldFailSetRole        bool
	ShouldFailSetActive      bool
	ShouldFailListUsers      bool
	ShouldFailLoginWithOAuth bool

	// Return values
	MockUser         entity.User
	MockAccessToken  string
	MockRefreshToken string

	// Recorded arguments
	LastOAuthProvider entity.AuthProvider
	LastOAuthEmail    string
	LastActive        *bool
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:           "mock-user-id",
			Username:     "testuser",
			Email:        "test@example.com",
			DisplayName:  "Test User",
			Role:         entity.UserRoleStudent,
			IsActive:     true,
			AuthProvider: entity.AuthProviderPassword,
			CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		MockAccessToken:  "mock_access_token",
		MockRefreshToken: "mock_refresh_token",
	}
}

func (m *MockUserUsecase) Register(ctx context.Context, username, email, password, displayName string) (*entity.User, error) {
	if m.ShouldFailCreateUser {
		return nil, usecase.ErrUserExists
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, identifier, password string) (*entity.User, string, string, error) {
	if m.ShouldFailInactive {
		return nil, "", "", usecase.ErrAccountInactive
	}
	if m.ShouldFailLogin {
		return nil, "", "", usecase.ErrInvalidCredentials
	}
	return &m.MockUser, m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailGetByID {
		return nil, usecase.ErrUserNotFound
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	if m.ShouldFailUpdateUser {
		return nil, errors.New("update user failed")
	}
	user := m.MockUser
	if name, ok := updates["display_name"].(string); ok {
		user.DisplayName = name
	}
	return &user, nil
}

func (m *MockUserUsecase) ForgotPassword(ctx context.Context, email string) error {
	if m.ShouldFailForgotPassword {
		return errors.New("forgot password failed")
	}
	return nil
}

func (m *MockUserUsecase) ResetPassword(ctx context.Context, verifier, token, password string) error {
	if m.ShouldFailResetPassword {
		return usecase.ErrInvalidToken
	}
	return nil
}

func (m *MockUserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	if m.ShouldFailRefreshToken {
		return "", "", usecase.ErrInvalidToken
	}
	return m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockUserUsecase) Logout(ctx context.Context, refreshToken string) error {
	if m.ShouldFailLogout {
		return errors.New("logout failed")
	}
	return nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	if m.ShouldFailInactive {
		return nil, usecase.ErrAccountInactive
	}
	if m.ShouldFailAuthenticate || accessToken != m.MockAccessToken {
		return nil, usecase.ErrInvalidToken
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) SetRole(ctx context.Context, userID string, role entity.UserRole) (*entity.User, error) {
	if m.ShouldFailSetRole {
		return nil, usecase.ErrUserNotFound
	}
	user := m.MockUser
	user.ID = userID
	user.Role = role
	return &user, nil
}

func (m *MockUserUsecase) SetActive(ctx context.Context, userID string, active bool) (*entity.User, error) {
	if m.ShouldFailSetActive {
		return nil, usecase.ErrUserNotFound
	}
	m.LastActive = &active
	user := m.MockUser
	user.ID = userID
	user.IsActive = active
	return &user, nil
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, page, pageSize int) ([]*entity.User, int64, error) {
	if m.ShouldFailListUsers {
		return nil, 0, errors.New("list users failed")
	}
	return []*entity.User{&m.MockUser}, 1, nil
}

func (m *MockUserUsecase) LoginWithOAuth(ctx context.Context, provider entity.AuthProvider, displayName, email string) (*entity.User, string, string, error) {
	if m.ShouldFailLoginWithOAuth {
		return nil, "", "", errors.New("login with OAuth failed")
	}
	m.LastOAuthProvider = provider
	m.LastOAuthEmail = email
	user := m.MockUser
	user.Email = email
	user.AuthProvider = provider
	return &user, m.MockAccessToken, m.MockRefreshToken, nil
}
