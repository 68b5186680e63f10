package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

const statsKey = "dashboard:stats"

// CourseCacheStore keeps course detail and dashboard stats in Redis.
type CourseCacheStore struct {
	rdb       *redis.Client
	detailTTL time.Duration
	statsTTL  time.Duration
}

var _ contract.ICourseCache = (*CourseCacheStore)(nil)

func NewCourseCacheStore(rdb *redis.Client) *CourseCacheStore {
	return &CourseCacheStore{
		rdb:       rdb,
		detailTTL: 30 * time.Minute,
		statsTTL:  5 * time.Minute,
	}
}

// A course is cached under its id and its slug.
func courseKey(ref string) string { return fmt.Sprintf("course:%s", ref) }

func getJSON[T any](ctx context.Context, rdb *redis.Client, key string) (*T, bool, error) {
	b, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		// a corrupt entry counts as a miss
		return nil, false, nil
	}
	return &v, true, nil
}

func (c *CourseCacheStore) GetCourse(ctx context.Context, ref string) (*entity.Course, bool, error) {
	return getJSON[entity.Course](ctx, c.rdb, courseKey(ref))
}

func (c *CourseCacheStore) SetCourse(ctx context.Context, course *entity.Course) error {
	data, err := json.Marshal(course)
	if err != nil {
		return err
	}
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, courseKey(course.ID), data, c.detailTTL)
	if course.Slug != "" {
		pipe.Set(ctx, courseKey(course.Slug), data, c.detailTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (c *CourseCacheStore) InvalidateCourse(ctx context.Context, refs ...string) error {
	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref != "" {
			keys = append(keys, courseKey(ref))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *CourseCacheStore) GetStats(ctx context.Context) (*entity.DashboardStats, bool, error) {
	return getJSON[entity.DashboardStats](ctx, c.rdb, statsKey)
}

func (c *CourseCacheStore) SetStats(ctx context.Context, stats *entity.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, data, c.statsTTL).Err()
}

func (c *CourseCacheStore) InvalidateStats(ctx context.Context) error {
	return c.rdb.Del(ctx, statsKey).Err()
}
