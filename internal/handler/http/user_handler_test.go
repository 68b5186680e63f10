package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	handler "github.com/mikiasgoitom/Learnify/internal/handler/http"
	dto "github.com/mikiasgoitom/Learnify/internal/handler/http/dto"
	mocks "github.com/mikiasgoitom/Learnify/internal/handler/http/mocks"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterCustomValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// withUser stands in for the auth middleware.
func withUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Next()
	}
}

func setupRouter(h handler.UserHandlerInterface) *gin.Engine {
	r := gin.New()
	r.POST("/register", h.CreateUser)
	r.POST("/login", h.Login)
	r.POST("/forgot-password", h.ForgotPassword)
	r.POST("/reset-password", h.ResetPassword)
	r.POST("/refresh-token", h.RefreshToken)
	me := r.Group("", withUser("mock-user-id"))
	me.GET("/me", h.GetCurrentUser)
	me.PUT("/me", h.UpdateUser)
	me.PUT("/users/:id/active", h.SetUserActive)
	me.PUT("/users/:id/role", h.SetUserRole)
	return r
}

func doJSON(r http.Handler, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateUser(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := doJSON(r, "POST", "/register", dto.CreateUserRequest{
		Username:    "testuser",
		Email:       "test@example.com",
		Password:    "Password123!",
		DisplayName: "Test User",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "User created successfully")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestCreateUser_ValidationFail(t *testing.T) {
	r := setupRouter(handler.NewUserHandler(mocks.NewMockUserUsecase()))

	w := doJSON(r, "POST", "/register", dto.CreateUserRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Field validation for 'Password' failed on the 'containsuppercase' tag")
}

func TestCreateUser_Conflict(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailCreateUser = true
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := doJSON(r, "POST", "/register", dto.CreateUserRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "Password123!",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "user already exists")
}

func TestLogin(t *testing.T) {
	r := setupRouter(handler.NewUserHandler(mocks.NewMockUserUsecase()))

	w := doJSON(r, "POST", "/login", dto.LoginRequest{Identifier: "testuser", Password: "Password123!"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "mock_access_token", resp.AccessToken)
	assert.Equal(t, "mock_refresh_token", resp.RefreshToken)
	assert.Equal(t, "student", resp.User.Role)
}

func TestLogin_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailLogin = true
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := doJSON(r, "POST", "/login", dto.LoginRequest{Identifier: "test@example.com", Password: "Password123!"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLogin_Inactive(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailInactive = true
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := doJSON(r, "POST", "/login", dto.LoginRequest{Identifier: "test@example.com", Password: "Password123!"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Account is deactivated")
}

func TestGetCurrentUser(t *testing.T) {
	r := setupRouter(handler.NewUserHandler(mocks.NewMockUserUsecase()))

	w := doJSON(r, "GET", "/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "testuser")
}

func TestGetCurrentUser_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailGetByID = true
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := doJSON(r, "GET", "/me", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestUpdateUser(t *testing.T) {
	r := setupRouter(handler.NewUserHandler(mocks.NewMockUserUsecase()))

	w := doJSON(r, "PUT", "/me", map[string]string{"display_name": "New Name"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Name")
}

func TestForgotPassword_AlwaysOK(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailForgotPassword = true
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := doJSON(r, "POST", "/forgot-password", dto.ForgotPasswordRequest{Email: "nobody@example.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "If an account with that email exists")
}

func TestResetPassword_InvalidToken(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailResetPassword = true
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := doJSON(r, "POST", "/reset-password", dto.ResetPasswordRequest{Verifier: "v", Token: "t", Password: "Password123!"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired reset token")
}

func TestRefreshToken(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := doJSON(r, "POST", "/refresh-token", dto.RefreshTokenRequest{RefreshToken: "old"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mock_refresh_token")

	mockUsecase.ShouldFailRefreshToken = true
	w = doJSON(r, "POST", "/refresh-token", dto.RefreshTokenRequest{RefreshToken: "old"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetUserActive_CannotDeactivateSelf(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := doJSON(r, "PUT", "/users/mock-user-id/active", map[string]bool{"active": false})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, mockUsecase.LastActive)
}

func TestSetUserActive_Other(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase))

	w := doJSON(r, "PUT", "/users/other-user/active", map[string]bool{"active": false})

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUsecase.LastActive)
	assert.False(t, *mockUsecase.LastActive)
	assert.Contains(t, w.Body.String(), `"is_active":false`)
}

func TestSetUserRole_RejectsUnknownRole(t *testing.T) {
	r := setupRouter(handler.NewUserHandler(mocks.NewMockUserUsecase()))

	w := doJSON(r, "PUT", "/users/other-user/role", map[string]string{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "PUT", "/users/other-user/role", map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}
