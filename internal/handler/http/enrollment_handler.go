package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

type EnrollmentHandler struct {
	enrollmentUsecase usecasecontract.IEnrollmentUseCase
}

func NewEnrollmentHandler(enrollmentUsecase usecasecontract.IEnrollmentUseCase) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentUsecase: enrollmentUsecase}
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	enrollment, err := h.enrollmentUsecase.Enroll(c.Request.Context(), userID, c.Param("ref"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	enrollment, err := h.enrollmentUsecase.GetEnrollment(c.Request.Context(), userID, c.Param("ref"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) MyEnrollments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	enrollments, err := h.enrollmentUsecase.ListUserEnrollments(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) CompleteLesson(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	var req dto.CompleteLessonRequest
	// an empty body means no hours were logged
	if c.Request.ContentLength > 0 {
		if err := BindAndValidate(c, &req); err != nil {
			return
		}
	}
	enrollment, err := h.enrollmentUsecase.CompleteLesson(c.Request.Context(), userID, c.Param("ref"), c.Param("lessonID"), req.HoursSpent)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, enrollment)
}

// CourseEnrollments lists every student of a course (admin).
func (h *EnrollmentHandler) CourseEnrollments(c *gin.Context) {
	enrollments, err := h.enrollmentUsecase.ListCourseEnrollments(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, enrollments)
}
