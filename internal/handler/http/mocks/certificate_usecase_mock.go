package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

type MockCertificateUsecase struct {
	ShouldFailIssue      bool
	ShouldFailList       bool
	ShouldFailNotFound   bool
	ShouldFailIneligible bool

	MockCertificate entity.Certificate
	LastIssueInput  *usecasecontract.IssueCertificateInput
	LastReason      string
}

var _ usecasecontract.ICertificateUseCase = (*MockCertificateUsecase)(nil)

func NewMockCertificateUsecase() *MockCertificateUsecase {
	return &MockCertificateUsecase{
		MockCertificate: entity.Certificate{
			ID:               "cert-1",
			UserID:           "mock-user-id",
			CourseID:         "course-1",
			RecipientName:    "Test User",
			CourseName:       "Go Basics",
			VerificationCode: "CERT-ABCDEF1234",
			IssuedAt:         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func (m *MockCertificateUsecase) cert() *entity.Certificate {
	c := m.MockCertificate
	return &c
}

func (m *MockCertificateUsecase) IssueCertificate(ctx context.Context, input usecasecontract.IssueCertificateInput) (*entity.Certificate, error) {
	if m.ShouldFailIssue {
		return nil, usecase.ErrCertificateAlreadyIssued
	}
	m.LastIssueInput = &input
	c := m.cert()
	c.UserID = input.UserID
	c.CourseID = input.CourseID
	c.Metadata = input.Metadata
	return c, nil
}

func (m *MockCertificateUsecase) ClaimCertificate(ctx context.Context, userID, courseRef string) (*entity.Certificate, error) {
	if m.ShouldFailIneligible {
		return nil, usecase.ErrNotEligible
	}
	c := m.cert()
	c.UserID = userID
	return c, nil
}

func (m *MockCertificateUsecase) VerifyCertificate(ctx context.Context, code string) (*entity.VerificationResult, error) {
	if code != m.MockCertificate.VerificationCode {
		return &entity.VerificationResult{IsValid: false, Message: "Certificate not found"}, nil
	}
	return &entity.VerificationResult{IsValid: true, Certificate: m.cert().Public(), Message: "Certificate is valid"}, nil
}

func (m *MockCertificateUsecase) CheckEligibility(ctx context.Context, userID, courseRef string) (*entity.Eligibility, error) {
	eligible := !m.ShouldFailIneligible
	return &entity.Eligibility{
		IsEligible:   eligible,
		Reason:       "checked",
		Requirements: []entity.Requirement{{Name: "course_completion", Met: eligible}},
	}, nil
}

func (m *MockCertificateUsecase) GetCertificate(ctx context.Context, id string) (*entity.Certificate, error) {
	if m.ShouldFailNotFound || id != m.MockCertificate.ID {
		return nil, usecase.ErrCertificateNotFound
	}
	return m.cert(), nil
}

func (m *MockCertificateUsecase) GetUserCertificates(ctx context.Context, userID string) ([]*entity.Certificate, error) {
	return []*entity.Certificate{m.cert()}, nil
}

func (m *MockCertificateUsecase) ListCertificates(ctx context.Context, page, pageSize int) ([]*entity.Certificate, int64, error) {
	if m.ShouldFailList {
		return nil, 0, errors.New("database unavailable")
	}
	return []*entity.Certificate{m.cert()}, 1, nil
}

func (m *MockCertificateUsecase) RevokeCertificate(ctx context.Context, id, reason string) (*entity.Certificate, error) {
	if m.ShouldFailNotFound {
		return nil, usecase.ErrCertificateNotFound
	}
	m.LastReason = reason
	now := time.Now()
	c := m.cert()
	c.IsRevoked = true
	c.RevocationReason = reason
	c.RevokedAt = &now
	return c, nil
}

func (m *MockCertificateUsecase) RestoreCertificate(ctx context.Context, id string) (*entity.Certificate, error) {
	if m.ShouldFailNotFound {
		return nil, usecase.ErrCertificateNotFound
	}
	return m.cert(), nil
}
