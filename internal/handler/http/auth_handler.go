package http

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const oauthStateCookie = "oauthState"

// OAuthProfileFetcher loads the identity behind a provider access token.
type OAuthProfileFetcher interface {
	Fetch(ctx context.Context, provider entity.AuthProvider, accessToken string) (*contract.OAuthProfile, error)
}

// OAuthCredentials are the client credentials registered with a provider.
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
}

type AuthHandler struct {
	UserUseCase usecasecontract.IUserUseCase
	Profiles    OAuthProfileFetcher
	BaseURL     string
	configs     map[entity.AuthProvider]*oauth2.Config
}

func NewAuthHandler(uc usecasecontract.IUserUseCase, profiles OAuthProfileFetcher, baseURL string, googleCreds, githubCreds OAuthCredentials) *AuthHandler {
	baseURL = strings.TrimRight(baseURL, "/")
	return &AuthHandler{
		UserUseCase: uc,
		Profiles:    profiles,
		BaseURL:     baseURL,
		configs: map[entity.AuthProvider]*oauth2.Config{
			entity.AuthProviderGoogle: {
				ClientID:     googleCreds.ClientID,
				ClientSecret: googleCreds.ClientSecret,
				RedirectURL:  baseURL + "/api/v1/auth/google/callback",
				Scopes:       []string{"email", "profile"},
				Endpoint:     google.Endpoint,
			},
			entity.AuthProviderGitHub: {
				ClientID:     githubCreds.ClientID,
				ClientSecret: githubCreds.ClientSecret,
				RedirectURL:  baseURL + "/api/v1/auth/github/callback",
				Scopes:       []string{"read:user", "user:email"},
				Endpoint:     github.Endpoint,
			},
		},
	}
}

func (h *AuthHandler) provider(c *gin.Context) (entity.AuthProvider, *oauth2.Config, bool) {
	p := entity.AuthProvider(c.Param("provider"))
	cfg, ok := h.configs[p]
	if !ok || cfg.ClientID == "" {
		ErrorHandler(c, http.StatusNotFound, "Unsupported login provider")
		return "", nil, false
	}
	return p, cfg, true
}

func (h *AuthHandler) secureCookies() bool {
	return strings.HasPrefix(h.BaseURL, "https://")
}

// HandleLogin redirects to the provider's consent page.
func (h *AuthHandler) HandleLogin(c *gin.Context) {
	_, cfg, ok := h.provider(c)
	if !ok {
		return
	}
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		ErrorHandler(c, http.StatusInternalServerError, "Failed to start login")
		return
	}
	state := base64.URLEncoding.EncodeToString(b)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 300, "/", "", h.secureCookies(), true)

	c.Redirect(http.StatusTemporaryRedirect, cfg.AuthCodeURL(state))
}

// HandleCallback finishes the code exchange and signs the user in.
func (h *AuthHandler) HandleCallback(c *gin.Context) {
	provider, cfg, ok := h.provider(c)
	if !ok {
		return
	}
	state := c.Query("state")
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		ErrorHandler(c, http.StatusUnauthorized, "invalid CSRF state token")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies(), true)

	code := c.Query("code")
	if code == "" {
		ErrorHandler(c, http.StatusBadRequest, "authorization code not provided")
		return
	}

	ctx := c.Request.Context()
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		_ = c.Error(err)
		ErrorHandler(c, http.StatusBadGateway, "failed to exchange authorization code")
		return
	}

	profile, err := h.Profiles.Fetch(ctx, provider, token.AccessToken)
	if err != nil {
		_ = c.Error(err)
		ErrorHandler(c, http.StatusBadGateway, "failed to get user info")
		return
	}

	user, accessToken, refreshToken, err := h.UserUseCase.LoginWithOAuth(ctx, provider, profile.Name, profile.Email)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(*user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}
