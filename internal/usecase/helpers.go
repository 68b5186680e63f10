package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// resolveCourse looks a course up by id first and falls back to its slug.
func resolveCourse(ctx context.Context, repo contract.ICourseRepository, ref string) (*entity.Course, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrCourseNotFound
	}
	course, err := repo.GetCourseByID(ctx, ref)
	if err == nil {
		return course, nil
	}
	if !errors.Is(err, contract.ErrNotFound) {
		return nil, fmt.Errorf("failed to get course %s: %w", ref, err)
	}
	course, err = repo.GetCourseBySlug(ctx, ref)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course by slug %s: %w", ref, err)
	}
	return course, nil
}

// courseSlug derives a unique slug from the title, transliterating accents
// and non-Latin scripts, and suffixes part of the course id.
func courseSlug(title, id string) string {
	base := slug.Make(title)
	if base == "" {
		base = "course"
	}
	return base + "-" + shortID(id)
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
