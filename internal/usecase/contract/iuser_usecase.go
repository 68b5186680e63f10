package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

// IUserUseCase defines the interface for user-related operations.
type IUserUseCase interface {
	Register(ctx context.Context, username, email, password, displayName string) (*entity.User, error)
	Login(ctx context.Context, identifier, password string) (*entity.User, string, string, error)
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, verifier, resetToken, newPassword string) error
	Logout(ctx context.Context, refreshToken string) error
	SetRole(ctx context.Context, userID string, role entity.UserRole) (*entity.User, error)
	SetActive(ctx context.Context, userID string, active bool) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error)
	LoginWithOAuth(ctx context.Context, provider entity.AuthProvider, displayName, email string) (*entity.User, string, string, error)
	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
	ListUsers(ctx context.Context, page, pageSize int) ([]*entity.User, int64, error)
}
