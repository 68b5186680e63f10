package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnrollmentRepository keeps the per-course enrollment documents, the root
// enrollment index and the lesson progress records.
type EnrollmentRepository struct {
	db          *mongo.Database
	enrollments *mongo.Collection
	index       *mongo.Collection
	progress    *mongo.Collection
	courses     *mongo.Collection
}

var _ contract.IEnrollmentRepository = (*EnrollmentRepository)(nil)

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{
		db:          db,
		enrollments: db.Collection(contract.CascadeCourseEnrollments),
		index:       db.Collection(contract.CascadeEnrollments),
		progress:    db.Collection(contract.CascadeUserProgress),
		courses:     db.Collection(contract.CascadeCourse),
	}
}

func (r *EnrollmentRepository) CreateEnrollmentTx(ctx context.Context, enrollment *entity.Enrollment) error {
	if enrollment.CompletedLessons == nil {
		enrollment.CompletedLessons = []string{}
	}
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		err := r.enrollments.FindOne(sc, bson.M{"_id": enrollment.ID}).Err()
		if err == nil {
			return nil, contract.ErrDuplicate
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to read enrollment: %w", err)
		}

		if err := r.courses.FindOne(sc, bson.M{"_id": enrollment.CourseID}).Err(); err != nil {
			return nil, mapErr(err)
		}

		if _, err := r.enrollments.InsertOne(sc, enrollment); err != nil {
			return nil, mapErr(err)
		}
		idx := &entity.EnrollmentIndex{
			ID:         enrollment.ID,
			UserID:     enrollment.UserID,
			CourseID:   enrollment.CourseID,
			EnrolledAt: enrollment.EnrolledAt,
		}
		if _, err := r.index.InsertOne(sc, idx); err != nil {
			return nil, mapErr(err)
		}

		res, err := r.courses.UpdateOne(sc, bson.M{"_id": enrollment.CourseID}, bson.M{"$inc": bson.M{"student_count": 1}})
		if err != nil {
			return nil, fmt.Errorf("failed to increment student count: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, contract.ErrNotFound
		}
		return nil, nil
	})
	return err
}

func (r *EnrollmentRepository) GetEnrollment(ctx context.Context, courseID, userID string) (*entity.Enrollment, error) {
	var enrollment entity.Enrollment
	err := r.enrollments.FindOne(ctx, bson.M{"_id": entity.EnrollmentKey(courseID, userID)}).Decode(&enrollment)
	if err != nil {
		return nil, mapErr(err)
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) find(ctx context.Context, filter bson.M) ([]*entity.Enrollment, error) {
	cursor, err := r.enrollments.Find(ctx, filter, options.Find().SetSort(bson.M{"enrolled_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to find enrollments: %w", err)
	}
	defer cursor.Close(ctx)

	enrollments := []*entity.Enrollment{}
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, fmt.Errorf("failed to decode enrollments: %w", err)
	}
	return enrollments, nil
}

// ListByUser resolves the user's courses through the root index, then loads
// the per-course documents.
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Enrollment, error) {
	cursor, err := r.index.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to read enrollment index: %w", err)
	}
	defer cursor.Close(ctx)

	var idx []entity.EnrollmentIndex
	if err := cursor.All(ctx, &idx); err != nil {
		return nil, fmt.Errorf("failed to decode enrollment index: %w", err)
	}
	if len(idx) == 0 {
		return []*entity.Enrollment{}, nil
	}
	keys := make(bson.A, 0, len(idx))
	for _, i := range idx {
		keys = append(keys, entity.EnrollmentKey(i.CourseID, i.UserID))
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": keys}})
}

func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]*entity.Enrollment, error) {
	return r.find(ctx, bson.M{"course_id": courseID})
}

// CompleteLessonTx runs the read-modify-write of a lesson completion in one
// transaction. Two completions racing on the same enrollment hit a write
// conflict and WithTransaction retries the loser against the fresh document.
func (r *EnrollmentRepository) CompleteLessonTx(ctx context.Context, progress *entity.UserProgress, hoursSpent float64, totalLessons int) (*entity.Enrollment, bool, error) {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, false, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	key := entity.EnrollmentKey(progress.CourseID, progress.UserID)
	var (
		updated       *entity.Enrollment
		justCompleted bool
	)
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		updated, justCompleted = nil, false

		var enrollment entity.Enrollment
		if err := r.enrollments.FindOne(sc, bson.M{"_id": key}).Decode(&enrollment); err != nil {
			return nil, mapErr(err)
		}
		newLesson, done := enrollment.CompleteLesson(progress.LessonID, hoursSpent, totalLessons, progress.CompletedAt)

		res, err := r.enrollments.ReplaceOne(sc, bson.M{"_id": key}, &enrollment)
		if err != nil {
			return nil, fmt.Errorf("failed to update enrollment: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, contract.ErrNotFound
		}
		if newLesson {
			if _, err := r.progress.InsertOne(sc, progress); err != nil {
				return nil, fmt.Errorf("failed to record progress: %w", mapErr(err))
			}
		}
		updated, justCompleted = &enrollment, done
		return nil, nil
	})
	if err != nil {
		return nil, false, err
	}
	return updated, justCompleted, nil
}
