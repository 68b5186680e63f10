package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	handler "github.com/mikiasgoitom/Learnify/internal/handler/http"
	dto "github.com/mikiasgoitom/Learnify/internal/handler/http/dto"
	mocks "github.com/mikiasgoitom/Learnify/internal/handler/http/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCertificateRouter(uc *mocks.MockCertificateUsecase) *gin.Engine {
	h := handler.NewCertificateHandler(uc)
	r := gin.New()
	r.GET("/certificates/verify/:code", h.VerifyCertificate)
	r.GET("/certificates/:id/download", h.DownloadCertificate)
	authed := r.Group("", withUser("mock-user-id"))
	authed.GET("/courses/:ref/certificate/eligibility", h.CheckEligibility)
	authed.POST("/courses/:ref/certificate", h.ClaimCertificate)
	authed.GET("/admin/certificates", h.ListCertificates)
	authed.POST("/admin/certificates", h.IssueCertificate)
	authed.POST("/admin/certificates/:id/revoke", h.RevokeCertificate)
	authed.POST("/admin/certificates/:id/restore", h.RestoreCertificate)
	return r
}

func TestVerifyCertificate(t *testing.T) {
	r := setupCertificateRouter(mocks.NewMockCertificateUsecase())

	w := doJSON(r, "GET", "/certificates/verify/CERT-ABCDEF1234", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result entity.VerificationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.IsValid)
	require.NotNil(t, result.Certificate)
	assert.Equal(t, "Test User", result.Certificate.RecipientName)
	assert.NotContains(t, w.Body.String(), "user_id")
}

func TestVerifyCertificate_UnknownCodeIsNotAnError(t *testing.T) {
	r := setupCertificateRouter(mocks.NewMockCertificateUsecase())

	w := doJSON(r, "GET", "/certificates/verify/CERT-NOPE", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_valid":false`)
	assert.NotContains(t, w.Body.String(), `"certificate"`)
}

func TestDownloadCertificate(t *testing.T) {
	r := setupCertificateRouter(mocks.NewMockCertificateUsecase())

	w := doJSON(r, "GET", "/certificates/cert-1/download", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CERT-ABCDEF1234")

	w = doJSON(r, "GET", "/certificates/missing/download", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckEligibility(t *testing.T) {
	uc := mocks.NewMockCertificateUsecase()
	uc.ShouldFailIneligible = true
	r := setupCertificateRouter(uc)

	w := doJSON(r, "GET", "/courses/go-basics/certificate/eligibility", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var eligibility entity.Eligibility
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &eligibility))
	assert.False(t, eligibility.IsEligible)
	assert.NotEmpty(t, eligibility.Requirements)
}

func TestClaimCertificate(t *testing.T) {
	uc := mocks.NewMockCertificateUsecase()
	r := setupCertificateRouter(uc)

	w := doJSON(r, "POST", "/courses/go-basics/certificate", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	uc.ShouldFailIneligible = true
	w = doJSON(r, "POST", "/courses/go-basics/certificate", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIssueCertificate(t *testing.T) {
	uc := mocks.NewMockCertificateUsecase()
	r := setupCertificateRouter(uc)
	score := 92.5

	w := doJSON(r, "POST", "/admin/certificates", dto.IssueCertificateRequest{
		UserID:        "student-1",
		CourseID:      "course-1",
		RecipientName: "Ada",
		CourseName:    "Go Basics",
		Score:         &score,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.LastIssueInput)
	require.NotNil(t, uc.LastIssueInput.Metadata)
	assert.Equal(t, 92.5, *uc.LastIssueInput.Metadata.Score)
}

func TestIssueCertificate_WithoutMetadata(t *testing.T) {
	uc := mocks.NewMockCertificateUsecase()
	r := setupCertificateRouter(uc)

	w := doJSON(r, "POST", "/admin/certificates", dto.IssueCertificateRequest{
		UserID:        "student-1",
		CourseID:      "course-1",
		RecipientName: "Ada",
		CourseName:    "Go Basics",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, uc.LastIssueInput.Metadata)
}

func TestIssueCertificate_AlreadyIssued(t *testing.T) {
	uc := mocks.NewMockCertificateUsecase()
	uc.ShouldFailIssue = true
	r := setupCertificateRouter(uc)

	w := doJSON(r, "POST", "/admin/certificates", dto.IssueCertificateRequest{
		UserID:        "student-1",
		CourseID:      "course-1",
		RecipientName: "Ada",
		CourseName:    "Go Basics",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRevokeCertificate(t *testing.T) {
	uc := mocks.NewMockCertificateUsecase()
	r := setupCertificateRouter(uc)

	w := doJSON(r, "POST", "/admin/certificates/cert-1/revoke", dto.RevokeCertificateRequest{Reason: "plagiarism"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "plagiarism", uc.LastReason)
	assert.Contains(t, w.Body.String(), `"is_revoked":true`)
}

func TestRevokeCertificate_BodyWithoutContentLength(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		status     int
		wantReason string
	}{
		{name: "chunked reason", body: `{"reason":"duplicate issue"}`, status: http.StatusOK, wantReason: "duplicate issue"},
		{name: "empty body", body: "", status: http.StatusOK, wantReason: ""},
		{name: "malformed json", body: `{"reason":`, status: http.StatusBadRequest, wantReason: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := mocks.NewMockCertificateUsecase()
			r := setupCertificateRouter(uc)

			req, err := http.NewRequest("POST", "/admin/certificates/cert-1/revoke", io.NopCloser(strings.NewReader(tt.body)))
			require.NoError(t, err)
			req.ContentLength = -1
			req.TransferEncoding = []string{"chunked"}
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.wantReason, uc.LastReason)
		})
	}
}

func TestRestoreCertificate_NotFound(t *testing.T) {
	uc := mocks.NewMockCertificateUsecase()
	uc.ShouldFailNotFound = true
	r := setupCertificateRouter(uc)

	w := doJSON(r, "POST", "/admin/certificates/missing/restore", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "certificate not found")
}

func TestListCertificates_InternalErrorIsHidden(t *testing.T) {
	uc := mocks.NewMockCertificateUsecase()
	uc.ShouldFailList = true
	r := setupCertificateRouter(uc)

	w := doJSON(r, "GET", "/admin/certificates?page=2&page_size=5", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database unavailable")
}

func TestListCertificates_Paginated(t *testing.T) {
	r := setupCertificateRouter(mocks.NewMockCertificateUsecase())

	w := doJSON(r, "GET", "/admin/certificates?page=2&page_size=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Items    []entity.Certificate `json:"items"`
		Total    int64                `json:"total"`
		Page     int                  `json:"page"`
		PageSize int                  `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 5, resp.PageSize)
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, handler.StatusFromError(errors.New("boom")))
}
