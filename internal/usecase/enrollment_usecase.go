package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

// EnrollmentUsecase implements IEnrollmentUseCase.
type EnrollmentUsecase struct {
	enrollmentRepo contract.IEnrollmentRepository
	courseRepo     contract.ICourseRepository
	lessonRepo     contract.ILessonRepository
	activityUC     usecasecontract.IActivityUseCase
	uuidgen        contract.IUUIDGenerator
	logger         usecasecontract.IAppLogger
	courseCache    contract.ICourseCache
}

func NewEnrollmentUsecase(
	enrollmentRepo contract.IEnrollmentRepository,
	courseRepo contract.ICourseRepository,
	lessonRepo contract.ILessonRepository,
	activityUC usecasecontract.IActivityUseCase,
	uuidgen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *EnrollmentUsecase {
	return &EnrollmentUsecase{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		activityUC:     activityUC,
		uuidgen:        uuidgen,
		logger:         logger,
	}
}

var _ usecasecontract.IEnrollmentUseCase = (*EnrollmentUsecase)(nil)

func (uc *EnrollmentUsecase) SetCourseCache(cache contract.ICourseCache) {
	uc.courseCache = cache
}

// Enroll adds userID to the course identified by courseRef (id or slug).
func (uc *EnrollmentUsecase) Enroll(ctx context.Context, userID, courseRef string) (*entity.Enrollment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}
	course, err := resolveCourse(ctx, uc.courseRepo, courseRef)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			go metrics.IncEnrollment("not_found")
		} else {
			go metrics.IncEnrollment("error")
		}
		return nil, err
	}

	// fast path; the transaction below re-checks
	existing, err := uc.enrollmentRepo.GetEnrollment(ctx, course.ID, userID)
	if err != nil && !errors.Is(err, contract.ErrNotFound) {
		go metrics.IncEnrollment("error")
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if existing != nil {
		go metrics.IncEnrollment("duplicate")
		return nil, ErrAlreadyEnrolled
	}

	now := time.Now()
	enrollment := &entity.Enrollment{
		ID:               entity.EnrollmentKey(course.ID, userID),
		CourseID:         course.ID,
		UserID:           userID,
		Progress:         0,
		CompletedLessons: []string{},
		EnrolledAt:       now,
		LastAccessedAt:   now,
	}

	if err := uc.enrollmentRepo.CreateEnrollmentTx(ctx, enrollment); err != nil {
		switch {
		case errors.Is(err, contract.ErrDuplicate):
			go metrics.IncEnrollment("duplicate")
			return nil, ErrAlreadyEnrolled
		case errors.Is(err, contract.ErrNotFound):
			go metrics.IncEnrollment("not_found")
			return nil, ErrCourseNotFound
		}
		uc.logger.Errorf("enrollment transaction failed for user %s course %s: %v", userID, course.ID, err)
		go metrics.IncEnrollment("error")
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}

	if uc.courseCache != nil {
		if err := uc.courseCache.InvalidateCourse(ctx, course.ID, course.Slug); err != nil {
			uc.logger.Warnf("failed to invalidate cache for course %s: %v", course.ID, err)
		}
		_ = uc.courseCache.InvalidateStats(ctx)
	}
	uc.logActivity(ctx, &entity.Activity{
		Type:        entity.ActivityEnrollment,
		Title:       "New enrollment",
		Description: fmt.Sprintf("Enrolled in %s", course.Title),
		ActorID:     userID,
		Metadata:    map[string]interface{}{"course_id": course.ID},
	})
	go metrics.IncEnrollment("created")

	return enrollment, nil
}

func (uc *EnrollmentUsecase) GetEnrollment(ctx context.Context, userID, courseRef string) (*entity.Enrollment, error) {
	course, err := resolveCourse(ctx, uc.courseRepo, courseRef)
	if err != nil {
		return nil, err
	}
	enrollment, err := uc.enrollmentRepo.GetEnrollment(ctx, course.ID, userID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return enrollment, nil
}

func (uc *EnrollmentUsecase) ListUserEnrollments(ctx context.Context, userID string) ([]*entity.Enrollment, error) {
	enrollments, err := uc.enrollmentRepo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorf("failed to list enrollments for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (uc *EnrollmentUsecase) ListCourseEnrollments(ctx context.Context, courseRef string) ([]*entity.Enrollment, error) {
	course, err := resolveCourse(ctx, uc.courseRepo, courseRef)
	if err != nil {
		return nil, err
	}
	enrollments, err := uc.enrollmentRepo.ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

// CompleteLesson records a finished lesson and recomputes progress. Completing
// the same lesson twice only adds hours.
func (uc *EnrollmentUsecase) CompleteLesson(ctx context.Context, userID, courseRef, lessonID string, hoursSpent float64) (*entity.Enrollment, error) {
	if hoursSpent < 0 {
		return nil, fmt.Errorf("%w: hours spent must not be negative", ErrInvalidInput)
	}
	course, err := resolveCourse(ctx, uc.courseRepo, courseRef)
	if err != nil {
		return nil, err
	}

	lessonIDs, err := uc.courseLessonIDs(ctx, course)
	if err != nil {
		return nil, err
	}
	if _, ok := lessonIDs[lessonID]; !ok {
		return nil, ErrLessonNotFound
	}

	progress := &entity.UserProgress{
		ID:          uc.uuidgen.NewUUID(),
		UserID:      userID,
		CourseID:    course.ID,
		LessonID:    lessonID,
		CompletedAt: time.Now(),
	}
	enrollment, justCompleted, err := uc.enrollmentRepo.CompleteLessonTx(ctx, progress, hoursSpent, len(lessonIDs))
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		uc.logger.Errorf("failed to complete lesson %s for user %s: %v", lessonID, userID, err)
		return nil, fmt.Errorf("failed to complete lesson: %w", err)
	}

	if justCompleted {
		uc.logActivity(ctx, &entity.Activity{
			Type:        entity.ActivityCourseCompleted,
			Title:       "Course completed",
			Description: course.Title,
			ActorID:     userID,
			Metadata:    map[string]interface{}{"course_id": course.ID},
		})
	}
	return enrollment, nil
}

// courseLessonIDs unions the outline lessons with the lesson documents.
func (uc *EnrollmentUsecase) courseLessonIDs(ctx context.Context, course *entity.Course) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	for _, id := range course.OutlineLessonIDs() {
		ids[id] = struct{}{}
	}
	lessons, err := uc.lessonRepo.ListLessons(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	for _, l := range lessons {
		ids[l.ID] = struct{}{}
	}
	return ids, nil
}

func (uc *EnrollmentUsecase) logActivity(ctx context.Context, a *entity.Activity) {
	if uc.activityUC == nil {
		return
	}
	if err := uc.activityUC.LogActivity(ctx, a); err != nil {
		uc.logger.Warnf("failed to record %s activity: %v", a.Type, err)
	}
}
