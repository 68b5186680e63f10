package contract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type IEnrollmentRepository interface {
	// CreateEnrollmentTx re-checks for an existing enrollment, inserts the
	// enrollment and its index document, and increments the course's
	// student counter, all inside one transaction. It returns ErrDuplicate
	// when the student is already enrolled and ErrNotFound when the course
	// disappeared.
	CreateEnrollmentTx(ctx context.Context, enrollment *entity.Enrollment) error
	GetEnrollment(ctx context.Context, courseID, userID string) (*entity.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*entity.Enrollment, error)
	// CompleteLessonTx applies entity.Enrollment.CompleteLesson to the stored
	// enrollment and, when the lesson is new, inserts progress, all inside one
	// transaction. It returns the updated enrollment, whether this call
	// finished the course, and ErrNotFound when there is no enrollment.
	CompleteLessonTx(ctx context.Context, progress *entity.UserProgress, hoursSpent float64, totalLessons int) (*entity.Enrollment, bool, error)
}
