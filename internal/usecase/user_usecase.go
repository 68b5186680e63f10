package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
	"golang.org/x/crypto/bcrypt"
)

// UserUsecase implements the IUserUseCase interface.
type UserUsecase struct {
	userRepo        contract.IUserRepository
	tokenRepo       contract.ITokenRepository
	hasher          contract.IHasher
	jwtService      JWTService
	mailService     contract.IEmailService
	activityUC      usecasecontract.IActivityUseCase
	logger          usecasecontract.IAppLogger
	config          usecasecontract.IConfigProvider
	validator       usecasecontract.IValidator
	uuidGenerator   contract.IUUIDGenerator
	randomGenerator contract.IRandomGenerator
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	tokenRepo contract.ITokenRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	mailService contract.IEmailService,
	activityUC usecasecontract.IActivityUseCase,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	randomgen contract.IRandomGenerator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		hasher:          hasher,
		jwtService:      jwtService,
		mailService:     mailService,
		activityUC:      activityUC,
		logger:          logger,
		config:          cfg,
		validator:       validator,
		uuidGenerator:   uuidGenerator,
		randomGenerator: randomgen,
	}
}

// check if UserUsecase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// Register handles user registration.
func (uc *UserUsecase) Register(ctx context.Context, username, email, password, displayName string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	if err := uc.validator.ValidatePasswordStrength(password); err != nil {
		return nil, fmt.Errorf("%w: weak password: %v", ErrInvalidInput, err)
	}

	existingUserByEmail, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, contract.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, ErrInternal
	}
	if existingUserByEmail != nil {
		return nil, fmt.Errorf("%w: email %s is taken", ErrUserExists, email)
	}

	existingUserByUsername, err := uc.userRepo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, contract.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by username: %v", err)
		return nil, ErrInternal
	}
	if existingUserByUsername != nil {
		return nil, fmt.Errorf("%w: username %s is taken", ErrUserExists, username)
	}

	hashedPassword, err := uc.hasher.HashPassword(password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process password")
	}

	now := time.Now()
	user := &entity.User{
		ID:           uc.uuidGenerator.NewUUID(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		DisplayName:  strings.TrimSpace(displayName),
		Role:         entity.DefaultRole(),
		IsActive:     true,
		AuthProvider: entity.AuthProviderPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email %s is taken", ErrUserExists, email)
		}
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, fmt.Errorf("failed to register user")
	}

	uc.logActivity(ctx, &entity.Activity{
		Type:        entity.ActivityRegistration,
		Title:       "New user registered",
		Description: fmt.Sprintf("%s joined", user.Name()),
		ActorID:     user.ID,
	})

	return user, nil
}

// Login handles user login and token generation.
func (uc *UserUsecase) Login(ctx context.Context, identifier, password string) (*entity.User, string, string, error) {
	var user *entity.User
	var err error

	if uc.validator.ValidateEmail(identifier) == nil {
		user, err = uc.userRepo.GetUserByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = uc.userRepo.GetUserByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		uc.logger.Errorf("failed to retrieve user for login: %v", err)
		return nil, "", "", ErrInternal
	}

	if !user.IsActive {
		return nil, "", "", ErrAccountInactive
	}
	if user.PasswordHash == "" {
		// social accounts have no password
		return nil, "", "", ErrInvalidCredentials
	}
	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := uc.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// issueTokens signs a token pair and stores the hashed refresh token.
func (uc *UserUsecase) issueTokens(ctx context.Context, user *entity.User) (string, string, error) {
	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return "", "", errors.New("failed to generate token")
	}

	refreshToken, err := uc.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate refresh token: %v", err)
		return "", "", errors.New("failed to generate token")
	}

	refreshTokenExpiry := uc.config.GetRefreshTokenExpiry()
	if refreshTokenExpiry <= 0 {
		uc.logger.Errorf("invalid refresh token expiry configuration: %v", refreshTokenExpiry)
		return "", "", errors.New("invalid refresh token expiry configuration")
	}

	// one live refresh token per user
	if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, user.ID, entity.TokenTypeRefresh); err != nil {
		uc.logger.Warnf("failed to revoke previous refresh tokens for user %s: %v", user.ID, err)
	}

	tokenEntity := &entity.Token{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    user.ID,
		TokenType: entity.TokenTypeRefresh,
		TokenHash: uc.hasher.HashString(refreshToken),
		ExpiresAt: time.Now().Add(refreshTokenExpiry),
		CreatedAt: time.Now(),
	}
	if err := uc.tokenRepo.CreateToken(ctx, tokenEntity); err != nil {
		uc.logger.Errorf("failed to store refresh token for user %s: %v", user.ID, err)
		return "", "", errors.New("failed to store token")
	}
	return accessToken, refreshToken, nil
}

// Authenticate resolves the user behind an access token.
func (uc *UserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user during authentication: %v", err)
		return nil, ErrInternal
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	return user, nil
}

// RefreshToken rotates a refresh token and issues a new access token.
func (uc *UserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	storedToken, err := uc.tokenRepo.GetTokenByUserID(ctx, claims.UserID, entity.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return "", "", fmt.Errorf("%w: refresh token not found, please log in again", ErrInvalidToken)
		}
		uc.logger.Errorf("failed to retrieve stored refresh token: %v", err)
		return "", "", ErrInternal
	}

	if storedToken.Revoke {
		return "", "", fmt.Errorf("%w: refresh token has been revoked", ErrInvalidToken)
	}

	if !uc.hasher.CheckHash(refreshToken, storedToken.TokenHash) {
		uc.logger.Warnf("refresh token mismatch for user %s", claims.UserID)
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", ErrInvalidToken
	}

	if storedToken.ExpiresAt.Before(time.Now()) {
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", fmt.Errorf("%w: refresh token expired", ErrInvalidToken)
	}

	// role may have changed since the token was issued
	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", ErrInternal
	}
	if !user.IsActive {
		return "", "", ErrAccountInactive
	}

	newAccessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate new access token during refresh: %v", err)
		return "", "", errors.New("failed to generate new access token")
	}
	newRefreshToken, err := uc.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate new refresh token during refresh: %v", err)
		return "", "", errors.New("failed to generate new refresh token")
	}

	err = uc.tokenRepo.UpdateToken(ctx, storedToken.ID, uc.hasher.HashString(newRefreshToken), time.Now().Add(uc.config.GetRefreshTokenExpiry()))
	if err != nil {
		uc.logger.Errorf("failed to update refresh token in db: %v", err)
		return "", "", errors.New("failed to update token")
	}

	return newAccessToken, newRefreshToken, nil
}

// ForgotPassword emails a reset link. Unknown addresses are not reported.
func (uc *UserUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			uc.logger.Infof("password reset requested for unknown email %s", email)
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	resetToken, err := uc.randomGenerator.GenerateRandomToken(32)
	if err != nil {
		return fmt.Errorf("failed to create password reset token: %w", err)
	}
	hashedResetToken, err := bcrypt.GenerateFromPassword([]byte(resetToken), 7)
	if err != nil {
		return fmt.Errorf("failed to hash reset token: %w", err)
	}
	// the verifier locates the token row; the token itself is only stored hashed
	verifier, err := uc.randomGenerator.GenerateRandomToken(16)
	if err != nil {
		return fmt.Errorf("failed to generate verifier: %w", err)
	}

	if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, user.ID, entity.TokenTypePasswordReset); err != nil {
		uc.logger.Warnf("failed to revoke previous reset tokens for user %s: %v", user.ID, err)
	}

	tokenEntity := &entity.Token{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    user.ID,
		TokenType: entity.TokenTypePasswordReset,
		TokenHash: string(hashedResetToken),
		Verifier:  verifier,
		ExpiresAt: time.Now().Add(uc.config.GetPasswordResetTokenExpiry()),
		CreatedAt: time.Now(),
	}
	if err := uc.tokenRepo.CreateToken(ctx, tokenEntity); err != nil {
		uc.logger.Errorf("failed to store password reset token for user %s: %v", user.ID, err)
		return errors.New("failed to initiate password reset")
	}

	emailSubject := "Password Reset Request"
	resetLink := fmt.Sprintf("%s/reset-password?verifier=%s&token=%s", uc.config.GetAppBaseURL(), verifier, resetToken)
	emailBody := fmt.Sprintf("Hi %s,\n\nYou have requested to reset your password. Please click the following link to reset your password: %s\n\nIf you did not request this, please ignore this email.\n\nThanks,\nThe Learnify Team", user.Name(), resetLink)

	if err := uc.mailService.SendEmail(ctx, user.Email, emailSubject, emailBody); err != nil {
		uc.logger.Errorf("failed to send password reset email to %s: %v", user.Email, err)
		return errors.New("failed to send password reset email")
	}
	return nil
}

// ResetPassword handles the password reset flow using a password reset token.
func (uc *UserUsecase) ResetPassword(ctx context.Context, verifier, resetToken, newPassword string) error {
	token, err := uc.tokenRepo.GetTokenByVerifier(ctx, verifier)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	if token.TokenType != entity.TokenTypePasswordReset || token.Revoke || time.Now().After(token.ExpiresAt) {
		return ErrInvalidToken
	}
	if err = bcrypt.CompareHashAndPassword([]byte(token.TokenHash), []byte(resetToken)); err != nil {
		return ErrInvalidToken
	}

	if err := uc.validator.ValidatePasswordStrength(newPassword); err != nil {
		return fmt.Errorf("%w: weak password: %v", ErrInvalidInput, err)
	}
	hashedPassword, err := uc.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err = uc.userRepo.UpdateUserPassword(ctx, token.UserID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password for user %s: %w", token.UserID, err)
	}
	if err = uc.tokenRepo.RevokeToken(ctx, token.ID); err != nil {
		return fmt.Errorf("failed to revoke reset token: %w", err)
	}
	// a password change ends every session
	if err = uc.tokenRepo.RevokeAllTokensForUser(ctx, token.UserID, entity.TokenTypeRefresh); err != nil {
		uc.logger.Warnf("failed to revoke refresh tokens after reset for user %s: %v", token.UserID, err)
	}
	return nil
}

// Logout revokes the refresh token. Invalid tokens are treated as already logged out.
func (uc *UserUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		uc.logger.Warnf("failed to parse refresh token on logout, assuming it's already invalid: %v", err)
		return nil
	}

	storedToken, err := uc.tokenRepo.GetTokenByUserID(ctx, claims.UserID, entity.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil
		}
		uc.logger.Errorf("failed to retrieve stored refresh token for user %s: %v", claims.UserID, err)
		return ErrInternal
	}

	if err := uc.tokenRepo.RevokeToken(ctx, storedToken.ID); err != nil {
		uc.logger.Errorf("failed to revoke refresh token for user %s: %v", claims.UserID, err)
		return errors.New("failed to revoke token")
	}
	return nil
}

// SetRole changes a user's role.
func (uc *UserUsecase) SetRole(ctx context.Context, userID string, role entity.UserRole) (*entity.User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		uc.logger.Errorf("failed to set role for user %s: %v", userID, err)
		return nil, errors.New("failed to update role")
	}
	return updated, nil
}

// SetActive enables or disables an account. Disabling also revokes its sessions.
func (uc *UserUsecase) SetActive(ctx context.Context, userID string, active bool) (*entity.User, error) {
	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		uc.logger.Errorf("failed to set active=%t for user %s: %v", active, userID, err)
		return nil, errors.New("failed to update user")
	}
	if !active {
		if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, userID, entity.TokenTypeRefresh); err != nil {
			uc.logger.Warnf("failed to revoke tokens of deactivated user %s: %v", userID, err)
		}
	}
	return updated, nil
}

// UpdateProfile allows a registered user to update their profile details.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	user, err := uc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if val, ok := updates["username"]; ok {
		if username, isString := val.(string); isString && username != user.Username {
			existing, err := uc.userRepo.GetUserByUsername(ctx, username)
			if err != nil && !errors.Is(err, contract.ErrNotFound) {
				uc.logger.Errorf("failed to check for existing username during update: %v", err)
				return nil, ErrInternal
			}
			if existing != nil && existing.ID != userID {
				return nil, fmt.Errorf("%w: username %s is taken", ErrUserExists, username)
			}
		}
	}

	for k, v := range updates {
		switch k {
		case "username":
			if username, ok := v.(string); ok && strings.TrimSpace(username) != "" {
				user.Username = strings.TrimSpace(username)
			}
		case "display_name":
			if name, ok := v.(string); ok {
				user.DisplayName = strings.TrimSpace(name)
			}
		case "avatar_url":
			if avatarURL, ok := v.(string); ok {
				user.AvatarURL = &avatarURL
			}
		}
	}
	user.UpdatedAt = time.Now()

	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		uc.logger.Errorf("failed to update profile for user %s: %v", userID, err)
		return nil, errors.New("failed to update profile")
	}
	return updated, nil
}

// LoginWithOAuth signs in a social account, creating the user on first login.
func (uc *UserUsecase) LoginWithOAuth(ctx context.Context, provider entity.AuthProvider, displayName, email string) (*entity.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", "", fmt.Errorf("%w: provider returned no email", ErrInvalidInput)
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, contract.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, "", "", ErrInternal
	}

	if user == nil {
		now := time.Now()
		newUser := &entity.User{
			ID:           uc.uuidGenerator.NewUUID(),
			Username:     email,
			Email:        email,
			DisplayName:  displayName,
			Role:         entity.DefaultRole(),
			IsVerified:   true,
			IsActive:     true,
			AuthProvider: provider,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.userRepo.CreateUser(ctx, newUser); err != nil {
			uc.logger.Errorf("failed to create user from %s login: %v", provider, err)
			return nil, "", "", fmt.Errorf("failed to register user")
		}
		uc.logActivity(ctx, &entity.Activity{
			Type:        entity.ActivityRegistration,
			Title:       "New user registered",
			Description: fmt.Sprintf("%s joined with %s", newUser.Name(), provider),
			ActorID:     newUser.ID,
		})
		user = newUser
	}

	if !user.IsActive {
		return nil, "", "", ErrAccountInactive
	}

	accessToken, refreshToken, err := uc.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

func (uc *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user by ID: %v", err)
		return nil, ErrInternal
	}
	return user, nil
}

func (uc *UserUsecase) ListUsers(ctx context.Context, page, pageSize int) ([]*entity.User, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	users, total, err := uc.userRepo.ListUsers(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (uc *UserUsecase) logActivity(ctx context.Context, a *entity.Activity) {
	if uc.activityUC == nil {
		return
	}
	if err := uc.activityUC.LogActivity(ctx, a); err != nil {
		uc.logger.Warnf("failed to record %s activity: %v", a.Type, err)
	}
}
