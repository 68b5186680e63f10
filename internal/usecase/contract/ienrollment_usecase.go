package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type IEnrollmentUseCase interface {
	Enroll(ctx context.Context, userID, courseRef string) (*entity.Enrollment, error)
	GetEnrollment(ctx context.Context, userID, courseRef string) (*entity.Enrollment, error)
	ListUserEnrollments(ctx context.Context, userID string) ([]*entity.Enrollment, error)
	ListCourseEnrollments(ctx context.Context, courseRef string) ([]*entity.Enrollment, error)
	CompleteLesson(ctx context.Context, userID, courseRef, lessonID string, hoursSpent float64) (*entity.Enrollment, error)
}
