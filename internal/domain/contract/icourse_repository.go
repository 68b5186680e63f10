package contract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

// CourseFilterOptions encapsulates filtering and pagination for course listings.
type CourseFilterOptions struct {
	Status   *entity.CourseStatus
	Category *string
	Level    *entity.CourseLevel
	Search   string
	Page     int
	PageSize int
}

// Collection names touched by the course deletion cascade, in delete order.
const (
	CascadeCourseEnrollments = "course_enrollments"
	CascadeLessons           = "lessons"
	CascadeUserProgress      = "user_progress"
	CascadeEnrollments       = "enrollments"
	CascadeCertificates      = "certificates"
	CascadeCourse            = "courses"
)

// ICourseRepository provides persistence for courses.
type ICourseRepository interface {
	CreateCourse(ctx context.Context, course *entity.Course) error
	GetCourseByID(ctx context.Context, id string) (*entity.Course, error)
	GetCourseBySlug(ctx context.Context, slug string) (*entity.Course, error)
	ListCourses(ctx context.Context, opts *CourseFilterOptions) ([]*entity.Course, int64, error)
	UpdateCourse(ctx context.Context, id string, updates map[string]interface{}) error
	// DeleteCourseCascade removes the course and every dependent document in
	// one transaction and reports how many documents each collection lost.
	DeleteCourseCascade(ctx context.Context, courseID string) (map[string]int64, error)
}

type ILessonRepository interface {
	CreateLesson(ctx context.Context, lesson *entity.Lesson) error
	ListLessons(ctx context.Context, courseID string) ([]*entity.Lesson, error)
}
