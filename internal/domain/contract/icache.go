package contract

import (
	"context"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

// ICourseCache defines caching operations for course detail and dashboard stats.
type ICourseCache interface {
	// Detail (by id or slug)
	GetCourse(ctx context.Context, ref string) (*entity.Course, bool, error)
	SetCourse(ctx context.Context, course *entity.Course) error
	InvalidateCourse(ctx context.Context, refs ...string) error

	// Dashboard
	GetStats(ctx context.Context) (*entity.DashboardStats, bool, error)
	SetStats(ctx context.Context, stats *entity.DashboardStats) error
	InvalidateStats(ctx context.Context) error
}
