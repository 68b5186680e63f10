package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
	"github.com/spf13/viper"
)

// Config holds application configuration values.
type Config struct {
	Port       string
	AppEnv     string
	AppBaseURL string

	MongoURI    string
	MongoDBName string
	RedisURL    string

	JWTSecret                string
	AccessTokenExpiry        time.Duration
	RefreshTokenExpiry       time.Duration
	PasswordResetTokenExpiry time.Duration

	EmailHost        string
	EmailPort        string
	EmailUsername    string
	EmailAppPassword string
	EmailFrom        string
	SendGridAPIKey   string

	RollbarToken string
	CodeVersion  string

	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string

	RateLimitPerSecond           float64
	CertificateRequireCompletion bool
	StatsSnapshotCron            string
	UploadMaxBytes               int64
	CORSAllowedOrigins           []string
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")
	v.SetDefault("MONGODB_URI", "")
	v.SetDefault("MONGODB_DB_NAME", "learnify")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ACCESS_TOKEN_EXPIRY_MINUTES", 15)
	v.SetDefault("REFRESH_TOKEN_EXPIRY_HOURS", 168)
	v.SetDefault("PASSWORD_RESET_TOKEN_EXPIRY_MINUTES", 15)
	v.SetDefault("EMAIL_HOST", "")
	v.SetDefault("EMAIL_PORT", "587")
	v.SetDefault("EMAIL_USERNAME", "")
	v.SetDefault("EMAIL_APP_PASSWORD", "")
	v.SetDefault("EMAIL_FROM", "noreply@learnify.local")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("ROLLBAR_TOKEN", "")
	v.SetDefault("CODE_VERSION", "dev")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GITHUB_CLIENT_ID", "")
	v.SetDefault("GITHUB_CLIENT_SECRET", "")
	v.SetDefault("RATE_LIMIT_PER_SECOND", 10.0)
	v.SetDefault("CERTIFICATE_REQUIRE_COMPLETION", false)
	v.SetDefault("STATS_SNAPSHOT_CRON", "@every 1h")
	v.SetDefault("UPLOAD_MAX_BYTES", int64(5<<20))
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.AutomaticEnv()
	return v
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("[WARN] failed to load .env: %v", err)
		}
	}
	v := newViper()

	cfg := &Config{
		Port:       v.GetString("PORT"),
		AppEnv:     v.GetString("APP_ENV"),
		AppBaseURL: v.GetString("APP_BASE_URL"),

		MongoURI:    v.GetString("MONGODB_URI"),
		MongoDBName: v.GetString("MONGODB_DB_NAME"),
		RedisURL:    v.GetString("REDIS_URL"),

		JWTSecret:                v.GetString("JWT_SECRET"),
		AccessTokenExpiry:        time.Minute * time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRY_MINUTES")),
		RefreshTokenExpiry:       time.Hour * time.Duration(v.GetInt("REFRESH_TOKEN_EXPIRY_HOURS")),
		PasswordResetTokenExpiry: time.Minute * time.Duration(v.GetInt("PASSWORD_RESET_TOKEN_EXPIRY_MINUTES")),

		EmailHost:        v.GetString("EMAIL_HOST"),
		EmailPort:        v.GetString("EMAIL_PORT"),
		EmailUsername:    v.GetString("EMAIL_USERNAME"),
		EmailAppPassword: v.GetString("EMAIL_APP_PASSWORD"),
		EmailFrom:        v.GetString("EMAIL_FROM"),
		SendGridAPIKey:   v.GetString("SENDGRID_API_KEY"),

		RollbarToken: v.GetString("ROLLBAR_TOKEN"),
		CodeVersion:  v.GetString("CODE_VERSION"),

		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GitHubClientID:     v.GetString("GITHUB_CLIENT_ID"),
		GitHubClientSecret: v.GetString("GITHUB_CLIENT_SECRET"),

		RateLimitPerSecond:           v.GetFloat64("RATE_LIMIT_PER_SECOND"),
		CertificateRequireCompletion: v.GetBool("CERTIFICATE_REQUIRE_COMPLETION"),
		StatsSnapshotCron:            v.GetString("STATS_SNAPSHOT_CRON"),
		UploadMaxBytes:               v.GetInt64("UPLOAD_MAX_BYTES"),
		CORSAllowedOrigins:           v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

func (c *Config) GetAccessTokenExpiry() time.Duration {
	return c.AccessTokenExpiry
}

// GetRefreshTokenExpiry returns the expiry duration for refresh tokens.
func (c *Config) GetRefreshTokenExpiry() time.Duration {
	return c.RefreshTokenExpiry
}

// GetPasswordResetTokenExpiry returns the expiry duration for password reset tokens.
func (c *Config) GetPasswordResetTokenExpiry() time.Duration {
	return c.PasswordResetTokenExpiry
}

func (c *Config) GetCertificateRequireCompletion() bool {
	return c.CertificateRequireCompletion
}

func (c *Config) GetUploadMaxBytes() int64 {
	return c.UploadMaxBytes
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
