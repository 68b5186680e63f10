package external_services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	githubUserURL     = "https://api.github.com/user"
	githubEmailsURL   = "https://api.github.com/user/emails"
)

var ErrOAuthNoEmail = errors.New("provider did not return a verified email")

// OAuthProfileFetcher reads the signed-in user's identity from a provider.
type OAuthProfileFetcher struct {
	client    *resty.Client
	googleURL string
	githubURL string
	emailsURL string
}

func NewOAuthProfileFetcher() *OAuthProfileFetcher {
	return &OAuthProfileFetcher{
		client:    resty.New().SetTimeout(10 * time.Second),
		googleURL: googleUserInfoURL,
		githubURL: githubUserURL,
		emailsURL: githubEmailsURL,
	}
}

// NewOAuthProfileFetcherWithURLs points the fetcher at other endpoints.
func NewOAuthProfileFetcherWithURLs(googleURL, githubURL, emailsURL string) *OAuthProfileFetcher {
	f := NewOAuthProfileFetcher()
	f.googleURL = googleURL
	f.githubURL = githubURL
	f.emailsURL = emailsURL
	return f
}

type googleUserInfo struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	VerifiedEmail bool   `json:"verified_email"`
}

type githubUser struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (f *OAuthProfileFetcher) Fetch(ctx context.Context, provider entity.AuthProvider, accessToken string) (*contract.OAuthProfile, error) {
	switch provider {
	case entity.AuthProviderGoogle:
		return f.fetchGoogle(ctx, accessToken)
	case entity.AuthProviderGitHub:
		return f.fetchGitHub(ctx, accessToken)
	default:
		return nil, fmt.Errorf("unsupported oauth provider %q", provider)
	}
}

func (f *OAuthProfileFetcher) fetchGoogle(ctx context.Context, token string) (*contract.OAuthProfile, error) {
	var info googleUserInfo
	resp, err := f.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&info).
		Get(f.googleURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get google user info: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("google user info returned status %d", resp.StatusCode())
	}
	if info.Email == "" {
		return nil, ErrOAuthNoEmail
	}
	return &contract.OAuthProfile{Email: info.Email, Name: info.Name}, nil
}

func (f *OAuthProfileFetcher) fetchGitHub(ctx context.Context, token string) (*contract.OAuthProfile, error) {
	var user githubUser
	resp, err := f.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Accept", "application/vnd.github+json").
		SetResult(&user).
		Get(f.githubURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get github user: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("github user returned status %d", resp.StatusCode())
	}

	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = user.Login
	}
	if user.Email != "" {
		return &contract.OAuthProfile{Email: user.Email, Name: name}, nil
	}

	// private email addresses are only listed on /user/emails
	var emails []githubEmail
	resp, err = f.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Accept", "application/vnd.github+json").
		SetResult(&emails).
		Get(f.emailsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get github emails: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("github emails returned status %d", resp.StatusCode())
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return &contract.OAuthProfile{Email: e.Email, Name: name}, nil
		}
	}
	return nil, ErrOAuthNoEmail
}
