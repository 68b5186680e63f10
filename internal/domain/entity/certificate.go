package entity

import "time"

// CertificateCodePrefix prefixes every verification code.
const CertificateCodePrefix = "CERT-"

// Certificate is an issued course-completion certificate.
type Certificate struct {
	ID               string               `bson:"_id" json:"id"`
	UserID           string               `bson:"user_id" json:"user_id"`
	CourseID         string               `bson:"course_id" json:"course_id"`
	RecipientName    string               `bson:"recipient_name" json:"recipient_name"`
	CourseName       string               `bson:"course_name" json:"course_name"`
	VerificationCode string               `bson:"verification_code" json:"verification_code"`
	DownloadURL      string               `bson:"download_url,omitempty" json:"download_url,omitempty"`
	IssuedAt         time.Time            `bson:"issued_at" json:"issued_at"`
	IsRevoked        bool                 `bson:"is_revoked" json:"is_revoked"`
	RevocationReason string               `bson:"revocation_reason,omitempty" json:"revocation_reason,omitempty"`
	RevokedAt        *time.Time           `bson:"revoked_at,omitempty" json:"revoked_at,omitempty"`
	Metadata         *CertificateMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type CertificateMetadata struct {
	CompletionDate *time.Time `bson:"completion_date,omitempty" json:"completion_date,omitempty"`
	Score          *float64   `bson:"score,omitempty" json:"score,omitempty"`
}

// PublicCertificate is the subset of a certificate exposed by verification.
type PublicCertificate struct {
	ID               string               `json:"id"`
	RecipientName    string               `json:"recipient_name"`
	CourseName       string               `json:"course_name"`
	VerificationCode string               `json:"verification_code"`
	IssuedAt         time.Time            `json:"issued_at"`
	IsRevoked        bool                 `json:"is_revoked"`
	Metadata         *CertificateMetadata `json:"metadata,omitempty"`
}

func (c *Certificate) Public() *PublicCertificate {
	return &PublicCertificate{
		ID:               c.ID,
		RecipientName:    c.RecipientName,
		CourseName:       c.CourseName,
		VerificationCode: c.VerificationCode,
		IssuedAt:         c.IssuedAt,
		IsRevoked:        c.IsRevoked,
		Metadata:         c.Metadata,
	}
}

// VerificationResult is the outcome of looking up a verification code.
type VerificationResult struct {
	IsValid     bool               `json:"is_valid"`
	Certificate *PublicCertificate `json:"certificate,omitempty"`
	Message     string             `json:"message"`
}

// Requirement is one condition evaluated for certificate eligibility.
type Requirement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Met         bool   `json:"met"`
}

type Eligibility struct {
	IsEligible   bool          `json:"is_eligible"`
	Reason       string        `json:"reason"`
	Requirements []Requirement `json:"requirements"`
}
