package http_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	handler "github.com/mikiasgoitom/Learnify/internal/handler/http"
	dto "github.com/mikiasgoitom/Learnify/internal/handler/http/dto"
	mocks "github.com/mikiasgoitom/Learnify/internal/handler/http/mocks"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCourseRouter(uc *mocks.MockCourseUsecase) *gin.Engine {
	h := handler.NewCourseHandler(uc, 1<<20)
	r := gin.New()
	r.GET("/courses", h.ListCourses)
	r.GET("/courses/:ref", h.GetCourse)
	admin := r.Group("/admin", withUser("admin-1"))
	admin.POST("/courses", h.CreateCourse)
	admin.PUT("/courses/:id", h.UpdateCourse)
	admin.DELETE("/courses/:ref", h.DeleteCourse)
	admin.POST("/courses/:id/lessons", h.CreateLesson)
	return r
}

func TestListCourses_Filters(t *testing.T) {
	uc := mocks.NewMockCourseUsecase()
	r := setupCourseRouter(uc)

	w := doJSON(r, "GET", "/courses?status=published&level=beginner&category=go&search=basics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.LastFilter.Status)
	assert.Equal(t, entity.CourseStatusPublished, *uc.LastFilter.Status)
	require.NotNil(t, uc.LastFilter.Level)
	assert.Equal(t, entity.CourseLevelBeginner, *uc.LastFilter.Level)
	require.NotNil(t, uc.LastFilter.Category)
	assert.Equal(t, "go", *uc.LastFilter.Category)
	assert.Equal(t, "basics", uc.LastFilter.Search)
	assert.Equal(t, 1, uc.LastFilter.Page)
	assert.Equal(t, 10, uc.LastFilter.PageSize)
}

func TestListCourses_InvalidStatus(t *testing.T) {
	r := setupCourseRouter(mocks.NewMockCourseUsecase())

	w := doJSON(r, "GET", "/courses?status=deleted", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCourse_BySlugAndMissing(t *testing.T) {
	r := setupCourseRouter(mocks.NewMockCourseUsecase())

	w := doJSON(r, "GET", "/courses/go-basics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/courses/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "course not found")
}

func TestCreateCourse(t *testing.T) {
	uc := mocks.NewMockCourseUsecase()
	r := setupCourseRouter(uc)

	w := doJSON(r, "POST", "/admin/courses", dto.CourseRequest{Title: "Concurrency", Level: "advanced", Status: "draft"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, entity.CourseLevelAdvanced, uc.LastInput.Level)
	assert.Contains(t, w.Body.String(), `"instructor_id":"admin-1"`)
}

func TestCreateCourse_InvalidLevel(t *testing.T) {
	r := setupCourseRouter(mocks.NewMockCourseUsecase())

	w := doJSON(r, "POST", "/admin/courses", dto.CourseRequest{Title: "Concurrency", Level: "expert"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCourse_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		result   *usecasecontract.DeleteCourseResult
		err      error
		status   int
		wantBody string
	}{
		{
			name:     "deleted",
			result:   &usecasecontract.DeleteCourseResult{Success: true, Outcome: usecasecontract.DeleteOutcomeDeleted, Message: "Course deleted", Removed: map[string]int64{"courses": 1}},
			status:   http.StatusOK,
			wantBody: "Course deleted",
		},
		{
			name:     "not found",
			result:   &usecasecontract.DeleteCourseResult{Outcome: usecasecontract.DeleteOutcomeNotFound, Message: "no such course"},
			status:   http.StatusNotFound,
			wantBody: "no such course",
		},
		{
			name:     "still present",
			result:   &usecasecontract.DeleteCourseResult{Outcome: usecasecontract.DeleteOutcomeStillPresent, Message: "Course still exists after deletion"},
			status:   http.StatusConflict,
			wantBody: "Course still exists after deletion",
		},
		{
			name:     "cascade failure",
			result:   &usecasecontract.DeleteCourseResult{Outcome: usecasecontract.DeleteOutcomeFailed, Message: "failed to delete course: write conflict"},
			err:      errors.New("write conflict"),
			status:   http.StatusInternalServerError,
			wantBody: "failed to delete course",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := mocks.NewMockCourseUsecase()
			uc.DeleteResult = tt.result
			uc.DeleteErr = tt.err
			r := setupCourseRouter(uc)

			w := doJSON(r, "DELETE", "/admin/courses/go-basics", nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.Contains(t, w.Body.String(), string(tt.result.Outcome))
			assert.NotContains(t, w.Body.String(), "write conflict")
		})
	}
}

func TestCreateLesson(t *testing.T) {
	uc := mocks.NewMockCourseUsecase()
	r := setupCourseRouter(uc)

	w := doJSON(r, "POST", "/admin/courses/course-1/lessons", dto.LessonRequest{Title: "Goroutines", Order: 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "POST", "/admin/courses/course-1/lessons", dto.LessonRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
