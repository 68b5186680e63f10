package external_services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

// StubCertificateRenderer does not produce a document; it returns the
// placeholder download route for the certificate.
type StubCertificateRenderer struct {
	baseURL string
}

var _ contract.ICertificateRenderer = (*StubCertificateRenderer)(nil)

func NewStubCertificateRenderer(baseURL string) *StubCertificateRenderer {
	return &StubCertificateRenderer{baseURL: strings.TrimRight(baseURL, "/")}
}

func (r *StubCertificateRenderer) Render(_ context.Context, cert *entity.Certificate) (string, error) {
	if cert == nil || cert.ID == "" {
		return "", fmt.Errorf("certificate id is required")
	}
	return fmt.Sprintf("%s/api/v1/certificates/%s/download", r.baseURL, cert.ID), nil
}
