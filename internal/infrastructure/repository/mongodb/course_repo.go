package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// cascadeOrder lists the dependent collections cleared before the course itself.
var cascadeOrder = []string{
	contract.CascadeCourseEnrollments,
	contract.CascadeLessons,
	contract.CascadeUserProgress,
	contract.CascadeEnrollments,
	contract.CascadeCertificates,
}

// CourseRepository is the MongoDB implementation of ICourseRepository.
type CourseRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

var _ contract.ICourseRepository = (*CourseRepository)(nil)

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{
		db:         db,
		collection: db.Collection(contract.CascadeCourse),
	}
}

func buildCourseFilter(opts *contract.CourseFilterOptions) bson.M {
	filter := bson.M{}
	if opts == nil {
		return filter
	}
	if opts.Status != nil {
		filter["status"] = *opts.Status
	}
	if opts.Category != nil && *opts.Category != "" {
		filter["category"] = *opts.Category
	}
	if opts.Level != nil {
		filter["level"] = *opts.Level
	}
	if opts.Search != "" {
		pattern := regexp.QuoteMeta(opts.Search)
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	return filter
}

func (r *CourseRepository) CreateCourse(ctx context.Context, course *entity.Course) error {
	if course.Sections == nil {
		course.Sections = []entity.CourseSection{}
	}
	if _, err := r.collection.InsertOne(ctx, course); err != nil {
		return fmt.Errorf("failed to create course: %w", mapErr(err))
	}
	return nil
}

func (r *CourseRepository) findOne(ctx context.Context, filter bson.M) (*entity.Course, error) {
	var course entity.Course
	if err := r.collection.FindOne(ctx, filter).Decode(&course); err != nil {
		return nil, mapErr(err)
	}
	return &course, nil
}

func (r *CourseRepository) GetCourseByID(ctx context.Context, id string) (*entity.Course, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CourseRepository) GetCourseBySlug(ctx context.Context, slug string) (*entity.Course, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

// ListCourses returns one page of courses, newest first, with the total match count.
func (r *CourseRepository) ListCourses(ctx context.Context, opts *contract.CourseFilterOptions) ([]*entity.Course, int64, error) {
	filter := buildCourseFilter(opts)
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total course count: %w", err)
	}

	page, size := 1, 10
	if opts != nil {
		page, size = opts.Page, opts.PageSize
	}
	skip, limit := skipLimit(page, size)
	findOpts := options.Find().SetSort(bson.M{"created_at": -1}).SetSkip(skip).SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve courses: %w", err)
	}
	defer cursor.Close(ctx)

	courses := []*entity.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, 0, fmt.Errorf("failed to decode courses: %w", err)
	}
	return courses, total, nil
}

// UpdateCourse applies a partial update. student_count is owned by the
// enrollment transaction and is dropped from updates.
func (r *CourseRepository) UpdateCourse(ctx context.Context, id string, updates map[string]interface{}) error {
	delete(updates, "student_count")
	delete(updates, "_id")
	updates["updated_at"] = time.Now()

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update course: %w", mapErr(err))
	}
	if res.MatchedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

// DeleteCourseCascade removes the course and all of its dependents in one
// transaction. Each dependent collection is cleared with a single
// server-side DeleteMany.
func (r *CourseRepository) DeleteCourseCascade(ctx context.Context, courseID string) (map[string]int64, error) {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	var removed map[string]int64
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// the callback can be retried, so counts start fresh each time
		removed = make(map[string]int64, len(cascadeOrder)+1)
		for _, name := range cascadeOrder {
			res, err := r.db.Collection(name).DeleteMany(sc, bson.M{"course_id": courseID})
			if err != nil {
				return nil, fmt.Errorf("failed to clear %s: %w", name, err)
			}
			removed[name] = res.DeletedCount
		}
		res, err := r.collection.DeleteOne(sc, bson.M{"_id": courseID})
		if err != nil {
			return nil, fmt.Errorf("failed to delete course document: %w", err)
		}
		removed[contract.CascadeCourse] = res.DeletedCount
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// LessonRepository stores standalone lesson documents.
type LessonRepository struct {
	collection *mongo.Collection
}

var _ contract.ILessonRepository = (*LessonRepository)(nil)

func NewLessonRepository(db *mongo.Database) *LessonRepository {
	return &LessonRepository{collection: db.Collection(contract.CascadeLessons)}
}

func (r *LessonRepository) CreateLesson(ctx context.Context, lesson *entity.Lesson) error {
	if _, err := r.collection.InsertOne(ctx, lesson); err != nil {
		return fmt.Errorf("failed to create lesson: %w", mapErr(err))
	}
	return nil
}

func (r *LessonRepository) ListLessons(ctx context.Context, courseID string) ([]*entity.Lesson, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer cursor.Close(ctx)

	lessons := []*entity.Lesson{}
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("failed to decode lessons: %w", err)
	}
	return lessons, nil
}
