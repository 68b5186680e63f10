package mocks

import (
	"context"
	"io"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

type MockCourseUsecase struct {
	ShouldFailNotFound bool

	MockCourse   entity.Course
	DeleteResult *usecasecontract.DeleteCourseResult
	DeleteErr    error
	LastFilter   usecasecontract.CourseFilter
	LastInput    usecasecontract.CourseInput
}

var _ usecasecontract.ICourseUseCase = (*MockCourseUsecase)(nil)

func NewMockCourseUsecase() *MockCourseUsecase {
	return &MockCourseUsecase{
		MockCourse: entity.Course{
			ID:     "course-1",
			Slug:   "go-basics",
			Title:  "Go Basics",
			Level:  entity.CourseLevelBeginner,
			Status: entity.CourseStatusPublished,
		},
		DeleteResult: &usecasecontract.DeleteCourseResult{Success: true, Outcome: usecasecontract.DeleteOutcomeDeleted, Message: "Course deleted"},
	}
}

func (m *MockCourseUsecase) course() *entity.Course {
	c := m.MockCourse
	return &c
}

func (m *MockCourseUsecase) CreateCourse(ctx context.Context, actorID string, input usecasecontract.CourseInput) (*entity.Course, error) {
	m.LastInput = input
	c := m.course()
	c.Title = input.Title
	c.InstructorID = actorID
	return c, nil
}

func (m *MockCourseUsecase) GetCourse(ctx context.Context, ref string) (*entity.Course, error) {
	if m.ShouldFailNotFound || (ref != m.MockCourse.ID && ref != m.MockCourse.Slug) {
		return nil, usecase.ErrCourseNotFound
	}
	return m.course(), nil
}

func (m *MockCourseUsecase) ListCourses(ctx context.Context, filter usecasecontract.CourseFilter) ([]*entity.Course, int64, error) {
	m.LastFilter = filter
	return []*entity.Course{m.course()}, 1, nil
}

func (m *MockCourseUsecase) UpdateCourse(ctx context.Context, id string, update usecasecontract.CourseUpdate) (*entity.Course, error) {
	if m.ShouldFailNotFound {
		return nil, usecase.ErrCourseNotFound
	}
	c := m.course()
	if update.Title != nil {
		c.Title = *update.Title
	}
	return c, nil
}

func (m *MockCourseUsecase) DeleteCourse(ctx context.Context, actorID, ref string) (*usecasecontract.DeleteCourseResult, error) {
	return m.DeleteResult, m.DeleteErr
}

func (m *MockCourseUsecase) SetThumbnail(ctx context.Context, id, filename, contentType string, r io.Reader) (*entity.Course, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	c := m.course()
	c.ThumbnailURL = "/api/v1/files/thumb"
	return c, nil
}

func (m *MockCourseUsecase) CreateLesson(ctx context.Context, courseRef string, input usecasecontract.LessonInput) (*entity.Lesson, error) {
	if m.ShouldFailNotFound {
		return nil, usecase.ErrCourseNotFound
	}
	return &entity.Lesson{ID: "lesson-1", CourseID: m.MockCourse.ID, Title: input.Title, Order: input.Order}, nil
}

func (m *MockCourseUsecase) ListLessons(ctx context.Context, courseRef string) ([]*entity.Lesson, error) {
	return []*entity.Lesson{}, nil
}
