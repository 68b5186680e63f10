package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

const (
	maxCodeAttempts = 3

	msgCertificateNotFound = "certificate not found"
	msgCertificateValid    = "certificate is valid"
	msgCertificateRevoked  = "certificate has been revoked"

	reasonAlreadyIssued     = "certificate already issued for this course"
	reasonCourseNotFound    = "course not found"
	reasonUserRequired      = "user is required"
	reasonRequirementsMet   = "all requirements met"
	reasonRequirementsUnmet = "requirements not met"
	defaultRevocationReason = "revoked by an administrator"
)

// CertificateUsecase issues, verifies and revokes course certificates.
type CertificateUsecase struct {
	certRepo       contract.ICertificateRepository
	courseRepo     contract.ICourseRepository
	enrollmentRepo contract.IEnrollmentRepository
	userRepo       contract.IUserRepository
	renderer       contract.ICertificateRenderer
	policy         IEligibilityPolicy
	mailService    contract.IEmailService
	activityUC     usecasecontract.IActivityUseCase
	uuidgen        contract.IUUIDGenerator
	logger         usecasecontract.IAppLogger
}

func NewCertificateUsecase(
	certRepo contract.ICertificateRepository,
	courseRepo contract.ICourseRepository,
	enrollmentRepo contract.IEnrollmentRepository,
	userRepo contract.IUserRepository,
	renderer contract.ICertificateRenderer,
	policy IEligibilityPolicy,
	mailService contract.IEmailService,
	activityUC usecasecontract.IActivityUseCase,
	uuidgen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *CertificateUsecase {
	if policy == nil {
		policy = PermissivePolicy{}
	}
	return &CertificateUsecase{
		certRepo:       certRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		renderer:       renderer,
		policy:         policy,
		mailService:    mailService,
		activityUC:     activityUC,
		uuidgen:        uuidgen,
		logger:         logger,
	}
}

var _ usecasecontract.ICertificateUseCase = (*CertificateUsecase)(nil)

// newVerificationCode returns CERT- followed by 8 upper-case hex digits.
func (uc *CertificateUsecase) newVerificationCode() string {
	hex := strings.ToUpper(strings.ReplaceAll(uc.uuidgen.NewUUID(), "-", ""))
	if len(hex) > 8 {
		hex = hex[:8]
	}
	return entity.CertificateCodePrefix + hex
}

// normalizeCode trims and upper-cases a user supplied code.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IssueCertificate stores a certificate, then attaches its download URL in a
// second write. A failed second write leaves the record without a URL.
func (uc *CertificateUsecase) IssueCertificate(ctx context.Context, input usecasecontract.IssueCertificateInput) (*entity.Certificate, error) {
	if strings.TrimSpace(input.UserID) == "" || strings.TrimSpace(input.CourseID) == "" {
		return nil, fmt.Errorf("%w: user and course are required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.RecipientName) == "" {
		return nil, fmt.Errorf("%w: recipient name is required", ErrInvalidInput)
	}

	cert := &entity.Certificate{
		ID:            uc.uuidgen.NewUUID(),
		UserID:        input.UserID,
		CourseID:      input.CourseID,
		RecipientName: strings.TrimSpace(input.RecipientName),
		CourseName:    strings.TrimSpace(input.CourseName),
		IssuedAt:      time.Now(),
		IsRevoked:     false,
		Metadata:      input.Metadata,
	}

	var err error
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		cert.VerificationCode = uc.newVerificationCode()
		err = uc.certRepo.CreateCertificate(ctx, cert)
		if err == nil {
			break
		}
		if errors.Is(err, contract.ErrDuplicateCode) {
			uc.logger.Warnf("verification code collision on attempt %d, retrying", attempt)
			continue
		}
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, ErrCertificateAlreadyIssued
		}
		uc.logger.Errorf("failed to create certificate for user %s course %s: %v", input.UserID, input.CourseID, err)
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to allocate a unique verification code: %w", err)
	}

	url, err := uc.renderer.Render(ctx, cert)
	if err != nil {
		uc.logger.Errorf("failed to render certificate %s: %v", cert.ID, err)
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}
	if err := uc.certRepo.SetDownloadURL(ctx, cert.ID, url); err != nil {
		uc.logger.Errorf("certificate %s stored without download url: %v", cert.ID, err)
		return nil, fmt.Errorf("failed to attach download url: %w", err)
	}
	cert.DownloadURL = url

	go metrics.IncCertificatesIssued()
	uc.logActivity(ctx, &entity.Activity{
		Type:        entity.ActivityCertificateIssued,
		Title:       "Certificate issued",
		Description: fmt.Sprintf("%s earned a certificate for %s", cert.RecipientName, cert.CourseName),
		ActorID:     cert.UserID,
		Metadata:    map[string]interface{}{"certificate_id": cert.ID, "course_id": cert.CourseID},
	})
	uc.notify(ctx, cert)

	return cert, nil
}

// notify emails the recipient. Failures are only logged.
func (uc *CertificateUsecase) notify(ctx context.Context, cert *entity.Certificate) {
	if uc.mailService == nil || uc.userRepo == nil {
		return
	}
	user, err := uc.userRepo.GetUserByID(ctx, cert.UserID)
	if err != nil {
		uc.logger.Warnf("skipping certificate email, user %s not loaded: %v", cert.UserID, err)
		return
	}
	subject := fmt.Sprintf("Your certificate for %s", cert.CourseName)
	body := fmt.Sprintf("Hi %s,\n\nCongratulations on completing %s!\n\nVerification code: %s\nDownload: %s\n\nThe Learnify Team",
		cert.RecipientName, cert.CourseName, cert.VerificationCode, cert.DownloadURL)
	if err := uc.mailService.SendEmail(ctx, user.Email, subject, body); err != nil {
		uc.logger.Warnf("failed to send certificate email to %s: %v", user.Email, err)
	}
}

// ClaimCertificate issues a certificate to the caller for courseRef.
func (uc *CertificateUsecase) ClaimCertificate(ctx context.Context, userID, courseRef string) (*entity.Certificate, error) {
	eligibility, err := uc.CheckEligibility(ctx, userID, courseRef)
	if err != nil {
		return nil, err
	}
	if !eligibility.IsEligible {
		switch eligibility.Reason {
		case reasonAlreadyIssued:
			return nil, ErrCertificateAlreadyIssued
		case reasonCourseNotFound:
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("%w: %s", ErrNotEligible, eligibility.Reason)
	}

	course, err := resolveCourse(ctx, uc.courseRepo, courseRef)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	metadata := &entity.CertificateMetadata{}
	if enrollment, err := uc.enrollmentRepo.GetEnrollment(ctx, course.ID, userID); err == nil && enrollment.CompletedAt != nil {
		metadata.CompletionDate = enrollment.CompletedAt
	}

	return uc.IssueCertificate(ctx, usecasecontract.IssueCertificateInput{
		UserID:        userID,
		CourseID:      course.ID,
		RecipientName: user.Name(),
		CourseName:    course.Title,
		Metadata:      metadata,
	})
}

// VerifyCertificate looks a code up. Unknown codes are a normal, invalid result.
func (uc *CertificateUsecase) VerifyCertificate(ctx context.Context, code string) (*entity.VerificationResult, error) {
	code = normalizeCode(code)
	if code == "" {
		go metrics.IncCertificateVerification("not_found")
		return &entity.VerificationResult{IsValid: false, Message: msgCertificateNotFound}, nil
	}

	cert, err := uc.certRepo.GetByVerificationCode(ctx, code)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			go metrics.IncCertificateVerification("not_found")
			return &entity.VerificationResult{IsValid: false, Message: msgCertificateNotFound}, nil
		}
		uc.logger.Errorf("certificate verification lookup failed: %v", err)
		return nil, fmt.Errorf("failed to verify certificate: %w", err)
	}

	if cert.IsRevoked {
		go metrics.IncCertificateVerification("revoked")
		msg := msgCertificateRevoked
		if cert.RevocationReason != "" {
			msg = fmt.Sprintf("%s: %s", msgCertificateRevoked, cert.RevocationReason)
		}
		return &entity.VerificationResult{IsValid: false, Certificate: cert.Public(), Message: msg}, nil
	}

	go metrics.IncCertificateVerification("valid")
	return &entity.VerificationResult{IsValid: true, Certificate: cert.Public(), Message: msgCertificateValid}, nil
}

// CheckEligibility reports whether userID may receive a certificate for the
// course. Unknown users or courses yield an ineligible result, not an error.
func (uc *CertificateUsecase) CheckEligibility(ctx context.Context, userID, courseRef string) (*entity.Eligibility, error) {
	if strings.TrimSpace(userID) == "" {
		return ineligible(reasonUserRequired, nil), nil
	}
	course, err := resolveCourse(ctx, uc.courseRepo, courseRef)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			return ineligible(reasonCourseNotFound, nil), nil
		}
		return nil, err
	}

	existing, err := uc.certRepo.GetByUserAndCourse(ctx, userID, course.ID)
	if err != nil && !errors.Is(err, contract.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing certificate: %w", err)
	}
	if existing != nil {
		return ineligible(reasonAlreadyIssued, nil), nil
	}

	requirements, err := uc.policy.Evaluate(ctx, userID, course)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate eligibility: %w", err)
	}
	if requirements == nil {
		requirements = []entity.Requirement{}
	}

	var unmet []string
	for _, r := range requirements {
		if !r.Met {
			unmet = append(unmet, r.Name)
		}
	}
	if len(unmet) > 0 {
		return ineligible(fmt.Sprintf("%s: %s", reasonRequirementsUnmet, strings.Join(unmet, ", ")), requirements), nil
	}
	return &entity.Eligibility{IsEligible: true, Reason: reasonRequirementsMet, Requirements: requirements}, nil
}

func ineligible(reason string, requirements []entity.Requirement) *entity.Eligibility {
	if requirements == nil {
		requirements = []entity.Requirement{}
	}
	return &entity.Eligibility{IsEligible: false, Reason: reason, Requirements: requirements}
}

func (uc *CertificateUsecase) GetCertificate(ctx context.Context, id string) (*entity.Certificate, error) {
	cert, err := uc.certRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}
	return cert, nil
}

// GetUserCertificates returns the user's certificates, newest first.
func (uc *CertificateUsecase) GetUserCertificates(ctx context.Context, userID string) ([]*entity.Certificate, error) {
	certs, err := uc.certRepo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorf("failed to list certificates for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certs, nil
}

func (uc *CertificateUsecase) ListCertificates(ctx context.Context, page, pageSize int) ([]*entity.Certificate, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	certs, total, err := uc.certRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certs, total, nil
}

func (uc *CertificateUsecase) RevokeCertificate(ctx context.Context, id, reason string) (*entity.Certificate, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultRevocationReason
	}
	now := time.Now()
	if err := uc.certRepo.SetRevocation(ctx, id, reason, &now); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("failed to revoke certificate: %w", err)
	}
	return uc.GetCertificate(ctx, id)
}

func (uc *CertificateUsecase) RestoreCertificate(ctx context.Context, id string) (*entity.Certificate, error) {
	if err := uc.certRepo.SetRevocation(ctx, id, "", nil); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("failed to restore certificate: %w", err)
	}
	return uc.GetCertificate(ctx, id)
}

func (uc *CertificateUsecase) logActivity(ctx context.Context, a *entity.Activity) {
	if uc.activityUC == nil {
		return
	}
	if err := uc.activityUC.LogActivity(ctx, a); err != nil {
		uc.logger.Warnf("failed to record %s activity: %v", a.Type, err)
	}
}
