package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

type CertificateHandler struct {
	certificateUsecase usecasecontract.ICertificateUseCase
}

func NewCertificateHandler(certificateUsecase usecasecontract.ICertificateUseCase) *CertificateHandler {
	return &CertificateHandler{certificateUsecase: certificateUsecase}
}

// VerifyCertificate is public. An unknown code is a 200 with is_valid=false.
func (h *CertificateHandler) VerifyCertificate(c *gin.Context) {
	result, err := h.certificateUsecase.VerifyCertificate(c.Request.Context(), c.Param("code"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, result)
}

// DownloadCertificate is a placeholder until documents are rendered; it
// returns the public view of the certificate.
func (h *CertificateHandler) DownloadCertificate(c *gin.Context) {
	cert, err := h.certificateUsecase.GetCertificate(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{
		"message":     "certificate document rendering is not available yet",
		"certificate": cert.Public(),
	})
}

func (h *CertificateHandler) MyCertificates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	certs, err := h.certificateUsecase.GetUserCertificates(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, certs)
}

func (h *CertificateHandler) CheckEligibility(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	eligibility, err := h.certificateUsecase.CheckEligibility(c.Request.Context(), userID, c.Param("ref"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, eligibility)
}

// ClaimCertificate issues a certificate to the caller when eligible.
func (h *CertificateHandler) ClaimCertificate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	cert, err := h.certificateUsecase.ClaimCertificate(c.Request.Context(), userID, c.Param("ref"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, cert)
}

func (h *CertificateHandler) IssueCertificate(c *gin.Context) {
	var req dto.IssueCertificateRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	input := usecasecontract.IssueCertificateInput{
		UserID:        req.UserID,
		CourseID:      req.CourseID,
		RecipientName: req.RecipientName,
		CourseName:    req.CourseName,
	}
	if req.CompletionDate != nil || req.Score != nil {
		input.Metadata = &entity.CertificateMetadata{CompletionDate: req.CompletionDate, Score: req.Score}
	}
	cert, err := h.certificateUsecase.IssueCertificate(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, cert)
}

func (h *CertificateHandler) ListCertificates(c *gin.Context) {
	page, size := pageParams(c)
	certs, total, err := h.certificateUsecase.ListCertificates(c.Request.Context(), page, size)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, paginated(certs, total, page, size))
}

func (h *CertificateHandler) RevokeCertificate(c *gin.Context) {
	var req dto.RevokeCertificateRequest
	// The reason is optional, so an empty body is fine.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}
	cert, err := h.certificateUsecase.RevokeCertificate(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, cert)
}

func (h *CertificateHandler) RestoreCertificate(c *gin.Context) {
	cert, err := h.certificateUsecase.RestoreCertificate(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, cert)
}
