package contract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type ICertificateRepository interface {
	CreateCertificate(ctx context.Context, cert *entity.Certificate) error
	SetDownloadURL(ctx context.Context, id, url string) error
	GetByID(ctx context.Context, id string) (*entity.Certificate, error)
	GetByVerificationCode(ctx context.Context, code string) (*entity.Certificate, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*entity.Certificate, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Certificate, error)
	List(ctx context.Context, page, pageSize int) ([]*entity.Certificate, int64, error)
	// SetRevocation stores or clears the revocation fields. A nil revokedAt clears them.
	SetRevocation(ctx context.Context, id string, reason string, revokedAt *time.Time) error
}
