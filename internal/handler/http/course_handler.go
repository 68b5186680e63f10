package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

type CourseHandler struct {
	courseUsecase  usecasecontract.ICourseUseCase
	maxUploadBytes int64
}

func NewCourseHandler(courseUsecase usecasecontract.ICourseUseCase, maxUploadBytes int64) *CourseHandler {
	return &CourseHandler{courseUsecase: courseUsecase, maxUploadBytes: maxUploadBytes}
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	page, size := pageParams(c)
	filter := usecasecontract.CourseFilter{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: size,
	}
	if s := c.Query("status"); s != "" {
		status := entity.CourseStatus(s)
		if !status.IsValid() {
			ErrorHandler(c, http.StatusBadRequest, "invalid status filter")
			return
		}
		filter.Status = &status
	}
	if l := c.Query("level"); l != "" {
		level := entity.CourseLevel(l)
		if !level.IsValid() {
			ErrorHandler(c, http.StatusBadRequest, "invalid level filter")
			return
		}
		filter.Level = &level
	}
	if cat := c.Query("category"); cat != "" {
		filter.Category = &cat
	}

	courses, total, err := h.courseUsecase.ListCourses(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, paginated(courses, total, page, size))
}

// GetCourse accepts an id or a slug.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseUsecase.GetCourse(c.Request.Context(), c.Param("ref"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, course)
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	actorID, _ := currentUserID(c)
	var req dto.CourseRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	course, err := h.courseUsecase.CreateCourse(c.Request.Context(), actorID, usecasecontract.CourseInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Category:    req.Category,
		Level:       entity.CourseLevel(req.Level),
		Price:       req.Price,
		Status:      entity.CourseStatus(req.Status),
		Sections:    req.Sections,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, course)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	update := usecasecontract.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Sections:    req.Sections,
	}
	if req.Level != nil {
		level := entity.CourseLevel(*req.Level)
		update.Level = &level
	}
	if req.Status != nil {
		status := entity.CourseStatus(*req.Status)
		update.Status = &status
	}

	course, err := h.courseUsecase.UpdateCourse(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, course)
}

// DeleteCourse runs the deletion cascade and maps its outcome to a status.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	actorID, _ := currentUserID(c)
	result, err := h.courseUsecase.DeleteCourse(c.Request.Context(), actorID, c.Param("ref"))
	if err != nil {
		_ = c.Error(err)
		if result == nil {
			RespondError(c, err)
			return
		}
	}
	switch result.Outcome {
	case usecasecontract.DeleteOutcomeDeleted:
		SuccessHandler(c, http.StatusOK, result)
	case usecasecontract.DeleteOutcomeNotFound:
		SuccessHandler(c, http.StatusNotFound, result)
	case usecasecontract.DeleteOutcomeStillPresent:
		SuccessHandler(c, http.StatusConflict, result)
	default:
		// Driver errors stay in the logs.
		SuccessHandler(c, http.StatusInternalServerError, &usecasecontract.DeleteCourseResult{
			Success: false,
			Outcome: usecasecontract.DeleteOutcomeFailed,
			Message: "failed to delete course",
		})
	}
}

func (h *CourseHandler) SetThumbnail(c *gin.Context) {
	file, header, ok := readUpload(c, h.maxUploadBytes)
	if !ok {
		return
	}
	defer file.Close()

	course, err := h.courseUsecase.SetThumbnail(c.Request.Context(), c.Param("id"), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, course)
}

func (h *CourseHandler) CreateLesson(c *gin.Context) {
	var req dto.LessonRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	lesson, err := h.courseUsecase.CreateLesson(c.Request.Context(), c.Param("id"), usecasecontract.LessonInput{
		Title:           req.Title,
		Content:         req.Content,
		Order:           req.Order,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, lesson)
}

func (h *CourseHandler) ListLessons(c *gin.Context) {
	lessons, err := h.courseUsecase.ListLessons(c.Request.Context(), c.Param("ref"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, lessons)
}
