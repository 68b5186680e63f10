package contract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type IUUIDGenerator interface {
	NewUUID() string
}

type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
}

type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
	HashString(s string) string
	CheckHash(s, hash string) bool
}

type IEmailService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// ICertificateRenderer produces the downloadable document for a certificate
// and returns where it can be fetched.
type ICertificateRenderer interface {
	Render(ctx context.Context, cert *entity.Certificate) (string, error)
}

// OAuthProfile is the identity returned by a social login provider.
type OAuthProfile struct {
	Email string
	Name  string
}
