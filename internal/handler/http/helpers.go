package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/handler/http/dto"
	"github.com/mikiasgoitom/Learnify/internal/usecase"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// StatusFromError maps usecase errors to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrInvalidCredentials), errors.Is(err, usecase.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden), errors.Is(err, usecase.ErrAccountInactive), errors.Is(err, usecase.ErrNotEligible):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrCourseNotFound),
		errors.Is(err, usecase.ErrEnrollmentNotFound),
		errors.Is(err, usecase.ErrLessonNotFound),
		errors.Is(err, usecase.ErrCertificateNotFound),
		errors.Is(err, usecase.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrAlreadyEnrolled),
		errors.Is(err, usecase.ErrCertificateAlreadyIssued),
		errors.Is(err, usecase.ErrUserExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// RespondError writes err with its mapped status. Internal errors are not
// echoed to the client.
func RespondError(c *gin.Context, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		ErrorHandler(c, status, usecase.ErrInternal.Error())
		return
	}
	ErrorHandler(c, status, err.Error())
}

// currentUserID reads the id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

func paginated(items interface{}, total int64, page, size int) dto.PaginatedResponse {
	return dto.PaginatedResponse{Items: items, Total: total, Page: page, PageSize: size}
}
