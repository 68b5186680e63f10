package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type IssueCertificateInput struct {
	UserID        string
	CourseID      string
	RecipientName string
	CourseName    string
	Metadata      *entity.CertificateMetadata
}

type ICertificateUseCase interface {
	IssueCertificate(ctx context.Context, input IssueCertificateInput) (*entity.Certificate, error)
	// ClaimCertificate issues a certificate to userID for the course if the
	// eligibility check passes.
	ClaimCertificate(ctx context.Context, userID, courseRef string) (*entity.Certificate, error)
	VerifyCertificate(ctx context.Context, code string) (*entity.VerificationResult, error)
	CheckEligibility(ctx context.Context, userID, courseRef string) (*entity.Eligibility, error)
	GetCertificate(ctx context.Context, id string) (*entity.Certificate, error)
	GetUserCertificates(ctx context.Context, userID string) ([]*entity.Certificate, error)
	ListCertificates(ctx context.Context, page, pageSize int) ([]*entity.Certificate, int64, error)
	RevokeCertificate(ctx context.Context, id, reason string) (*entity.Certificate, error)
	RestoreCertificate(ctx context.Context, id string) (*entity.Certificate, error)
}
