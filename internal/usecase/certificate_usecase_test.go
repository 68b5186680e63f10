package usecase_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^CERT-[0-9A-F]{8}$`)

func issueInput(userID, courseID string) usecasecontract.IssueCertificateInput {
	return usecasecontract.IssueCertificateInput{
		UserID:        userID,
		CourseID:      courseID,
		RecipientName: "Ada Lovelace",
		CourseName:    "Go Basics",
	}
}

func TestIssueCertificate(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	student := env.registerStudent(t, "ada")

	cert, err := env.certs.IssueCertificate(ctx, issueInput(student.ID, "course-1"))

	require.NoError(t, err)
	assert.Regexp(t, codePattern, cert.VerificationCode)
	assert.False(t, cert.IsRevoked)
	assert.Equal(t, "https://learnify.test/api/v1/certificates/"+cert.ID+"/download", cert.DownloadURL)

	stored, err := env.store.Certificates().GetByID(ctx, cert.ID)
	require.NoError(t, err)
	assert.Equal(t, cert.DownloadURL, stored.DownloadURL)

	mail, ok := env.mailer.Last()
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", mail.To)
	assert.Contains(t, mail.Body, cert.VerificationCode)
}

func TestIssueCertificate_RequiresFields(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.certs.IssueCertificate(context.Background(), usecasecontract.IssueCertificateInput{UserID: "u1"})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = env.certs.IssueCertificate(context.Background(), usecasecontract.IssueCertificateInput{UserID: "u1", CourseID: "c1", RecipientName: "  "})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestIssueCertificate_AlreadyIssued(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	_, err := env.certs.IssueCertificate(ctx, issueInput("u1", "c1"))
	require.NoError(t, err)
	_, err = env.certs.IssueCertificate(ctx, issueInput("u1", "c1"))

	assert.ErrorIs(t, err, usecase.ErrCertificateAlreadyIssued)
}

func TestIssueCertificate_RetriesCodeCollision(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	require.NoError(t, env.store.Certificates().CreateCertificate(ctx, &entity.Certificate{
		ID:               "existing",
		UserID:           "someone",
		CourseID:         "c0",
		VerificationCode: "CERT-AAAAAAAA",
		IssuedAt:         time.Now(),
	}))
	env.uuids.Queue = []string{"new-cert", "aaaaaaaa-1111-1111-1111-111111111111", "bbbbbbbb-2222-2222-2222-222222222222"}

	cert, err := env.certs.IssueCertificate(ctx, issueInput("u1", "c1"))

	require.NoError(t, err)
	assert.Equal(t, "new-cert", cert.ID)
	assert.Equal(t, "CERT-BBBBBBBB", cert.VerificationCode)
}

func TestIssueCertificate_GivesUpAfterRepeatedCollisions(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	require.NoError(t, env.store.Certificates().CreateCertificate(ctx, &entity.Certificate{
		ID: "existing", UserID: "someone", CourseID: "c0", VerificationCode: "CERT-AAAAAAAA",
	}))
	same := "aaaaaaaa-1111-1111-1111-111111111111"
	env.uuids.Queue = []string{"new-cert", same, same, same}

	_, err := env.certs.IssueCertificate(ctx, issueInput("u1", "c1"))

	assert.ErrorIs(t, err, contract.ErrDuplicateCode)
}

func TestIssueCertificate_DownloadURLWriteFails(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.store.FailSetDownloadURL = true

	_, err := env.certs.IssueCertificate(ctx, issueInput("u1", "c1"))
	require.Error(t, err)

	// the first write is kept, without a download url
	stored, err := env.store.Certificates().GetByUserAndCourse(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Empty(t, stored.DownloadURL)
}

func TestVerifyCertificate(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	cert, err := env.certs.IssueCertificate(ctx, issueInput("u1", "c1"))
	require.NoError(t, err)

	result, err := env.certs.VerifyCertificate(ctx, "  "+strings.ToLower(cert.VerificationCode)+" ")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	require.NotNil(t, result.Certificate)
	assert.Equal(t, "Ada Lovelace", result.Certificate.RecipientName)

	result, err = env.certs.VerifyCertificate(ctx, "CERT-00000000")
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Nil(t, result.Certificate)

	result, err = env.certs.VerifyCertificate(ctx, "")
	require.NoError(t, err)
	assert.False(t, result.IsValid)
}

func TestRevokeAndRestoreCertificate(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	cert, err := env.certs.IssueCertificate(ctx, issueInput("u1", "c1"))
	require.NoError(t, err)

	revoked, err := env.certs.RevokeCertificate(ctx, cert.ID, "academic misconduct")
	require.NoError(t, err)
	assert.True(t, revoked.IsRevoked)
	assert.NotNil(t, revoked.RevokedAt)

	result, err := env.certs.VerifyCertificate(ctx, cert.VerificationCode)
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Message, "academic misconduct")
	require.NotNil(t, result.Certificate)
	assert.True(t, result.Certificate.IsRevoked)

	restored, err := env.certs.RestoreCertificate(ctx, cert.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsRevoked)
	assert.Nil(t, restored.RevokedAt)
	assert.Empty(t, restored.RevocationReason)

	result, err = env.certs.VerifyCertificate(ctx, cert.VerificationCode)
	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func TestRevokeCertificate_DefaultReasonAndMissing(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	cert, err := env.certs.IssueCertificate(ctx, issueInput("u1", "c1"))
	require.NoError(t, err)

	revoked, err := env.certs.RevokeCertificate(ctx, cert.ID, "")
	require.NoError(t, err)
	assert.NotEmpty(t, revoked.RevocationReason)

	_, err = env.certs.RevokeCertificate(ctx, "missing", "x")
	assert.ErrorIs(t, err, usecase.ErrCertificateNotFound)
	_, err = env.certs.RestoreCertificate(ctx, "missing")
	assert.ErrorIs(t, err, usecase.ErrCertificateNotFound)
}

func TestCheckEligibility_NeverErrorsOnUnknowns(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		ref    string
	}{
		{"no user", "", "anything"},
		{"unknown course", "u1", "no-such-course"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligibility, err := env.certs.CheckEligibility(ctx, tt.userID, tt.ref)
			require.NoError(t, err)
			assert.False(t, eligibility.IsEligible)
			assert.NotEmpty(t, eligibility.Reason)
			assert.NotNil(t, eligibility.Requirements)
		})
	}
}

func TestCheckEligibility_Permissive(t *testing.T) {
	env := newTestEnv(t, false)
	course := env.createCourse(t, "Go Basics")

	eligibility, err := env.certs.CheckEligibility(context.Background(), "u1", course.Slug)

	require.NoError(t, err)
	assert.True(t, eligibility.IsEligible)
	assert.NotEmpty(t, eligibility.Requirements)
}

func TestClaimCertificate_CompletionPolicy(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	student := env.registerStudent(t, "grace")
	course := env.createCourse(t, "Concurrency", "l1", "l2")

	_, err := env.certs.ClaimCertificate(ctx, student.ID, course.ID)
	assert.ErrorIs(t, err, usecase.ErrNotEligible)

	_, err = env.enrollments.Enroll(ctx, student.ID, course.Slug)
	require.NoError(t, err)
	eligibility, err := env.certs.CheckEligibility(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, eligibility.IsEligible)
	assert.Contains(t, eligibility.Reason, "course_completion")

	_, err = env.enrollments.CompleteLesson(ctx, student.ID, course.ID, "l1", 1)
	require.NoError(t, err)
	_, err = env.enrollments.CompleteLesson(ctx, student.ID, course.ID, "l2", 1.5)
	require.NoError(t, err)

	cert, err := env.certs.ClaimCertificate(ctx, student.ID, course.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Student grace", cert.RecipientName)
	assert.Equal(t, "Concurrency", cert.CourseName)
	require.NotNil(t, cert.Metadata)
	assert.NotNil(t, cert.Metadata.CompletionDate)

	_, err = env.certs.ClaimCertificate(ctx, student.ID, course.Slug)
	assert.ErrorIs(t, err, usecase.ErrCertificateAlreadyIssued)

	mine, err := env.certs.GetUserCertificates(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
