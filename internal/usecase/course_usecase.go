package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

const (
	msgCourseNotFound     = "course not found"
	msgCourseDeleted      = "course deleted"
	msgCourseStillPresent = "course still present after delete; cached data may be stale"
	msgCourseDeleteFailed = "failed to delete course"
)

// CourseUsecase implements ICourseUseCase.
type CourseUsecase struct {
	courseRepo  contract.ICourseRepository
	lessonRepo  contract.ILessonRepository
	storage     contract.IFileStorage
	activityUC  usecasecontract.IActivityUseCase
	uuidgen     contract.IUUIDGenerator
	logger      usecasecontract.IAppLogger
	courseCache contract.ICourseCache
}

func NewCourseUsecase(
	courseRepo contract.ICourseRepository,
	lessonRepo contract.ILessonRepository,
	storage contract.IFileStorage,
	activityUC usecasecontract.IActivityUseCase,
	uuidgen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *CourseUsecase {
	return &CourseUsecase{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
		storage:    storage,
		activityUC: activityUC,
		uuidgen:    uuidgen,
		logger:     logger,
	}
}

var _ usecasecontract.ICourseUseCase = (*CourseUsecase)(nil)

// SetCourseCache enables the optional read cache.
func (uc *CourseUsecase) SetCourseCache(cache contract.ICourseCache) {
	uc.courseCache = cache
}

func (uc *CourseUsecase) CreateCourse(ctx context.Context, actorID string, input usecasecontract.CourseInput) (*entity.Course, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	level := input.Level
	if level == "" {
		level = entity.CourseLevelBeginner
	}
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, level)
	}
	status := input.Status
	if status == "" {
		status = entity.CourseStatusDraft
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	id := uc.uuidgen.NewUUID()
	slugValue := slug.Make(input.Slug)
	if slugValue == "" {
		slugValue = courseSlug(title, id)
	}

	now := time.Now()
	course := &entity.Course{
		ID:           id,
		Slug:         slugValue,
		Title:        title,
		Description:  input.Description,
		Category:     input.Category,
		Level:        level,
		Price:        input.Price,
		Status:       status,
		StudentCount: 0,
		InstructorID: actorID,
		Sections:     uc.withLessonIDs(input.Sections),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.courseRepo.CreateCourse(ctx, course); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, fmt.Errorf("%w: slug %s is already in use", ErrInvalidInput, slugValue)
		}
		uc.logger.Errorf("failed to create course: %v", err)
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	uc.logActivity(ctx, &entity.Activity{
		Type:        entity.ActivityCourseCreated,
		Title:       "Course created",
		Description: course.Title,
		ActorID:     actorID,
		Metadata:    map[string]interface{}{"course_id": course.ID},
	})
	return course, nil
}

// withLessonIDs assigns ids to outline lessons that arrived without one.
func (uc *CourseUsecase) withLessonIDs(sections []entity.CourseSection) []entity.CourseSection {
	if sections == nil {
		return []entity.CourseSection{}
	}
	for i := range sections {
		for j := range sections[i].Lessons {
			if sections[i].Lessons[j].ID == "" {
				sections[i].Lessons[j].ID = uc.uuidgen.NewUUID()
			}
		}
	}
	return sections
}

// GetCourse resolves ref as an id or slug, serving from the cache when possible.
func (uc *CourseUsecase) GetCourse(ctx context.Context, ref string) (*entity.Course, error) {
	if uc.courseCache != nil {
		start := time.Now()
		cached, found, err := uc.courseCache.GetCourse(ctx, ref)
		elapsed := time.Since(start)
		if err == nil && found {
			go metrics.IncCacheHit(metrics.CacheCourse)
			go metrics.AddHitDuration(elapsed.Seconds())
			return cached, nil
		}
		if err != nil {
			uc.logger.Warnf("course cache lookup failed for %s: %v", ref, err)
		}
		go metrics.IncCacheMiss(metrics.CacheCourse)
		go metrics.AddMissDuration(elapsed.Seconds())
	}

	course, err := resolveCourse(ctx, uc.courseRepo, ref)
	if err != nil {
		return nil, err
	}
	if uc.courseCache != nil {
		_ = uc.courseCache.SetCourse(ctx, course)
	}
	return course, nil
}

func (uc *CourseUsecase) ListCourses(ctx context.Context, filter usecasecontract.CourseFilter) ([]*entity.Course, int64, error) {
	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	opts := &contract.CourseFilterOptions{
		Status:   filter.Status,
		Category: filter.Category,
		Level:    filter.Level,
		Search:   strings.TrimSpace(filter.Search),
		Page:     page,
		PageSize: pageSize,
	}
	courses, total, err := uc.courseRepo.ListCourses(ctx, opts)
	if err != nil {
		uc.logger.Errorf("failed to list courses: %v", err)
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, total, nil
}

// UpdateCourse applies a partial update. The student counter is never client writable.
func (uc *CourseUsecase) UpdateCourse(ctx context.Context, id string, update usecasecontract.CourseUpdate) (*entity.Course, error) {
	course, err := resolveCourse(ctx, uc.courseRepo, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		updates["title"] = title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Level != nil {
		if !update.Level.IsValid() {
			return nil, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, *update.Level)
		}
		updates["level"] = *update.Level
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
		}
		updates["price"] = *update.Price
	}
	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *update.Status)
		}
		updates["status"] = *update.Status
	}
	if update.Sections != nil {
		updates["sections"] = uc.withLessonIDs(update.Sections)
	}
	if len(updates) == 0 {
		return course, nil
	}
	updates["updated_at"] = time.Now()

	if err := uc.courseRepo.UpdateCourse(ctx, course.ID, updates); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		uc.logger.Errorf("failed to update course %s: %v", course.ID, err)
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	uc.invalidate(ctx, course)

	return uc.reload(ctx, course.ID)
}

// DeleteCourse removes a course and everything that references it. Not found
// and a course surviving the delete are reported through the result, not
// as errors.
func (uc *CourseUsecase) DeleteCourse(ctx context.Context, actorID, ref string) (*usecasecontract.DeleteCourseResult, error) {
	course, err := resolveCourse(ctx, uc.courseRepo, ref)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			return uc.deleteResult(usecasecontract.DeleteOutcomeNotFound, msgCourseNotFound, nil), nil
		}
		uc.logger.Errorf("course lookup for deletion of %s failed: %v", ref, err)
		return uc.deleteResult(usecasecontract.DeleteOutcomeFailed, msgCourseDeleteFailed, nil), err
	}

	removed, err := uc.courseRepo.DeleteCourseCascade(ctx, course.ID)
	if err != nil {
		uc.logger.Errorf("course deletion cascade failed for %s: %v", course.ID, err)
		return uc.deleteResult(usecasecontract.DeleteOutcomeFailed, msgCourseDeleteFailed, nil), err
	}

	uc.invalidate(ctx, course)
	if uc.courseCache != nil {
		_ = uc.courseCache.InvalidateStats(ctx)
	}

	if _, err := uc.courseRepo.GetCourseByID(ctx, course.ID); err == nil {
		uc.logger.Warnf("course %s still present after delete", course.ID)
		return uc.deleteResult(usecasecontract.DeleteOutcomeStillPresent, msgCourseStillPresent, removed), nil
	} else if !errors.Is(err, contract.ErrNotFound) {
		uc.logger.Warnf("could not confirm deletion of course %s: %v", course.ID, err)
	}

	uc.logActivity(ctx, &entity.Activity{
		Type:        entity.ActivityCourseDeleted,
		Title:       "Course deleted",
		Description: course.Title,
		ActorID:     actorID,
		Metadata:    map[string]interface{}{"course_id": course.ID, "removed": removed},
	})
	return uc.deleteResult(usecasecontract.DeleteOutcomeDeleted, msgCourseDeleted, removed), nil
}

func (uc *CourseUsecase) deleteResult(outcome usecasecontract.DeleteOutcome, msg string, removed map[string]int64) *usecasecontract.DeleteCourseResult {
	go metrics.IncCourseDeletion(string(outcome))
	return &usecasecontract.DeleteCourseResult{
		Success: outcome == usecasecontract.DeleteOutcomeDeleted,
		Outcome: outcome,
		Message: msg,
		Removed: removed,
	}
}

// SetThumbnail stores the image and points the course at it.
func (uc *CourseUsecase) SetThumbnail(ctx context.Context, id, filename, contentType string, r io.Reader) (*entity.Course, error) {
	course, err := resolveCourse(ctx, uc.courseRepo, id)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: thumbnail must be an image", ErrInvalidInput)
	}
	_, url, err := uc.storage.Upload(ctx, filename, contentType, r)
	if err != nil {
		uc.logger.Errorf("failed to upload thumbnail for course %s: %v", course.ID, err)
		return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
	}
	updates := map[string]interface{}{"thumbnail_url": url, "updated_at": time.Now()}
	if err := uc.courseRepo.UpdateCourse(ctx, course.ID, updates); err != nil {
		return nil, fmt.Errorf("failed to set thumbnail: %w", err)
	}
	uc.invalidate(ctx, course)
	return uc.reload(ctx, course.ID)
}

func (uc *CourseUsecase) CreateLesson(ctx context.Context, courseRef string, input usecasecontract.LessonInput) (*entity.Lesson, error) {
	course, err := resolveCourse(ctx, uc.courseRepo, courseRef)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: lesson title is required", ErrInvalidInput)
	}
	if input.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}
	lesson := &entity.Lesson{
		ID:              uc.uuidgen.NewUUID(),
		CourseID:        course.ID,
		Title:           strings.TrimSpace(input.Title),
		Content:         input.Content,
		Order:           input.Order,
		DurationMinutes: input.DurationMinutes,
		CreatedAt:       time.Now(),
	}
	if err := uc.lessonRepo.CreateLesson(ctx, lesson); err != nil {
		uc.logger.Errorf("failed to create lesson for course %s: %v", course.ID, err)
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	return lesson, nil
}

func (uc *CourseUsecase) ListLessons(ctx context.Context, courseRef string) ([]*entity.Lesson, error) {
	course, err := resolveCourse(ctx, uc.courseRepo, courseRef)
	if err != nil {
		return nil, err
	}
	lessons, err := uc.lessonRepo.ListLessons(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

func (uc *CourseUsecase) reload(ctx context.Context, id string) (*entity.Course, error) {
	course, err := uc.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to reload course: %w", err)
	}
	return course, nil
}

func (uc *CourseUsecase) invalidate(ctx context.Context, course *entity.Course) {
	if uc.courseCache == nil {
		return
	}
	if err := uc.courseCache.InvalidateCourse(ctx, course.ID, course.Slug); err != nil {
		uc.logger.Warnf("failed to invalidate cache for course %s: %v", course.ID, err)
	}
}

func (uc *CourseUsecase) logActivity(ctx context.Context, a *entity.Activity) {
	if uc.activityUC == nil {
		return
	}
	if err := uc.activityUC.LogActivity(ctx, a); err != nil {
		uc.logger.Warnf("failed to record %s activity: %v", a.Type, err)
	}
}
