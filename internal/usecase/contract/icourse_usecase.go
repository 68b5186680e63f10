package usecasecontract

import (
	"context"
	"io"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type CourseInput struct {
	Title       string
	Slug        string
	Description string
	Category    string
	Level       entity.CourseLevel
	Price       float64
	Status      entity.CourseStatus
	Sections    []entity.CourseSection
}

// CourseUpdate carries a partial update; nil fields are left untouched.
type CourseUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Level       *entity.CourseLevel
	Price       *float64
	Status      *entity.CourseStatus
	Sections    []entity.CourseSection
}

type CourseFilter struct {
	Status   *entity.CourseStatus
	Category *string
	Level    *entity.CourseLevel
	Search   string
	Page     int
	PageSize int
}

type LessonInput struct {
	Title           string
	Content         string
	Order           int
	DurationMinutes int
}

// DeleteOutcome classifies a finished deletion cascade.
type DeleteOutcome string

const (
	DeleteOutcomeDeleted      DeleteOutcome = "deleted"
	DeleteOutcomeNotFound     DeleteOutcome = "not_found"
	DeleteOutcomeStillPresent DeleteOutcome = "still_present"
	DeleteOutcomeFailed       DeleteOutcome = "failed"
)

// DeleteCourseResult reports the outcome of the deletion cascade. Removed
// maps collection name to number of documents deleted.
type DeleteCourseResult struct {
	Success bool             `json:"success"`
	Outcome DeleteOutcome    `json:"outcome"`
	Message string           `json:"message"`
	Removed map[string]int64 `json:"removed,omitempty"`
}

type ICourseUseCase interface {
	CreateCourse(ctx context.Context, actorID string, input CourseInput) (*entity.Course, error)
	GetCourse(ctx context.Context, ref string) (*entity.Course, error)
	ListCourses(ctx context.Context, filter CourseFilter) ([]*entity.Course, int64, error)
	UpdateCourse(ctx context.Context, id string, update CourseUpdate) (*entity.Course, error)
	DeleteCourse(ctx context.Context, actorID, ref string) (*DeleteCourseResult, error)
	SetThumbnail(ctx context.Context, id, filename, contentType string, r io.Reader) (*entity.Course, error)
	CreateLesson(ctx context.Context, courseRef string, input LessonInput) (*entity.Lesson, error)
	ListLessons(ctx context.Context, courseRef string) ([]*entity.Lesson, error)
}
