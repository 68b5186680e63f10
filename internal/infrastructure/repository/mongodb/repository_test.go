package mongodb

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func ns(mt *mtest.T, coll string) string {
	return mt.DB.Name() + "." + coll
}

func sampleCertificate() *entity.Certificate {
	return &entity.Certificate{
		ID:               "c1",
		UserID:           "u1",
		CourseID:         "k1",
		RecipientName:    "Ada",
		CourseName:       "Go",
		VerificationCode: "CERT-ABCDEF12",
		IssuedAt:         time.Now(),
	}
}

func TestCertificateRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("code collision maps to ErrDuplicateCode", func(mt *mtest.T) {
		repo := NewCertificateRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.certificates index: " + certCodeIndex + " dup key",
		}))

		err := repo.CreateCertificate(context.Background(), sampleCertificate())
		assert.ErrorIs(t, err, contract.ErrDuplicateCode)
	})

	mt.Run("second certificate for pair maps to ErrDuplicate", func(mt *mtest.T) {
		repo := NewCertificateRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.certificates index: " + certPairIndex + " dup key",
		}))

		err := repo.CreateCertificate(context.Background(), sampleCertificate())
		assert.ErrorIs(t, err, contract.ErrDuplicate)
		assert.NotErrorIs(t, err, contract.ErrDuplicateCode)
	})

	mt.Run("lookup by code", func(mt *mtest.T) {
		repo := NewCertificateRepository(mt.DB)
		issued := primitive.NewDateTimeFromTime(time.Now())
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns(mt, contract.CascadeCertificates), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "c1"},
			{Key: "user_id", Value: "u1"},
			{Key: "course_id", Value: "k1"},
			{Key: "recipient_name", Value: "Ada"},
			{Key: "course_name", Value: "Go"},
			{Key: "verification_code", Value: "CERT-ABCDEF12"},
			{Key: "issued_at", Value: issued},
			{Key: "is_revoked", Value: false},
		}))

		cert, err := repo.GetByVerificationCode(context.Background(), "CERT-ABCDEF12")
		require.NoError(t, err)
		assert.Equal(t, "c1", cert.ID)
		assert.Equal(t, "CERT-ABCDEF12", cert.VerificationCode)
	})

	mt.Run("missing code maps to ErrNotFound", func(mt *mtest.T) {
		repo := NewCertificateRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCertificates), mtest.FirstBatch))

		_, err := repo.GetByVerificationCode(context.Background(), "CERT-00000000")
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})

	mt.Run("revocation on unknown id", func(mt *mtest.T) {
		repo := NewCertificateRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		now := time.Now()
		err := repo.SetRevocation(context.Background(), "missing", "fraud", &now)
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})

	mt.Run("restore unsets revocation fields", func(mt *mtest.T) {
		repo := NewCertificateRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		require.NoError(t, repo.SetRevocation(context.Background(), "c1", "", nil))
		cmd := mt.GetStartedEvent().Command.String()
		assert.Contains(t, cmd, "$unset")
		assert.Contains(t, cmd, "revocation_reason")
	})
}

func TestCourseRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown slug maps to ErrNotFound", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourse), mtest.FirstBatch))

		_, err := repo.GetCourseBySlug(context.Background(), "nope")
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})

	mt.Run("update never writes student_count", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := repo.UpdateCourse(context.Background(), "k1", map[string]interface{}{
			"title":         "New title",
			"student_count": 999,
		})
		require.NoError(t, err)
		cmd := mt.GetStartedEvent().Command.String()
		assert.Contains(t, cmd, "New title")
		assert.False(t, strings.Contains(cmd, "student_count"))
	})

	mt.Run("update on unknown id", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.UpdateCourse(context.Background(), "missing", map[string]interface{}{"title": "x"})
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})

	mt.Run("list returns total and page", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourse), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(2)}}),
			mtest.CreateCursorResponse(1, ns(mt, contract.CascadeCourse), mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "k1"}, {Key: "slug", Value: "go-101"}, {Key: "title", Value: "Go 101"}},
				bson.D{{Key: "_id", Value: "k2"}, {Key: "slug", Value: "go-201"}, {Key: "title", Value: "Go 201"}},
			),
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourse), mtest.NextBatch),
		)

		courses, total, err := repo.ListCourses(context.Background(), &contract.CourseFilterOptions{Search: "go", Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, courses, 2)
		assert.Equal(t, "go-101", courses[0].Slug)
	})
}

func TestEnrollmentRepository_GetEnrollmentMissing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourseEnrollments), mtest.FirstBatch))

		_, err := repo.GetEnrollment(context.Background(), "k1", "u1")
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})

	mt.Run("list by user without index entries", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contract.CascadeEnrollments), mtest.FirstBatch))

		enrollments, err := repo.ListByUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Empty(t, enrollments)
	})
}

func TestStatsRepository_CountAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("counts every collection", func(mt *mtest.T) {
		repo := NewStatsRepository(mt.DB)
		for _, n := range []int32{5, 3, 7, 2, 4} {
			mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "count"), mtest.FirstBatch, bson.D{{Key: "n", Value: n}}))
		}

		stats, err := repo.CountAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(5), stats.Users)
		assert.Equal(t, int64(3), stats.Courses)
		assert.Equal(t, int64(7), stats.Enrollments)
		assert.Equal(t, int64(2), stats.Certificates)
		assert.Equal(t, int64(4), stats.Products)
	})
}

func TestTokenRepository_RevokeUnknown(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown id", func(mt *mtest.T) {
		repo := NewTokenRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(t, repo.RevokeToken(context.Background(), "missing"), contract.ErrNotFound)
	})
}

func enrollmentDoc(completed ...string) bson.D {
	lessons := bson.A{}
	for _, id := range completed {
		lessons = append(lessons, id)
	}
	return bson.D{
		{Key: "_id", Value: entity.EnrollmentKey("k1", "u1")},
		{Key: "course_id", Value: "k1"},
		{Key: "user_id", Value: "u1"},
		{Key: "progress", Value: int32(0)},
		{Key: "completed", Value: false},
		{Key: "hours_spent", Value: 1.0},
		{Key: "completed_lessons", Value: lessons},
	}
}

func TestEnrollmentRepository_CreateEnrollmentTx(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	newEnrollment := func() *entity.Enrollment {
		return &entity.Enrollment{ID: entity.EnrollmentKey("k1", "u1"), CourseID: "k1", UserID: "u1", EnrolledAt: time.Now()}
	}
	course := bson.D{{Key: "_id", Value: "k1"}, {Key: "slug", Value: "go-101"}}

	mt.Run("existing enrollment inside the transaction", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourseEnrollments), mtest.FirstBatch, enrollmentDoc()))

		err := repo.CreateEnrollmentTx(context.Background(), newEnrollment())
		assert.ErrorIs(t, err, contract.ErrDuplicate)
	})

	mt.Run("course gone", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourseEnrollments), mtest.FirstBatch),
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourse), mtest.FirstBatch),
		)

		err := repo.CreateEnrollmentTx(context.Background(), newEnrollment())
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})

	mt.Run("duplicate key on insert", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourseEnrollments), mtest.FirstBatch),
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourse), mtest.FirstBatch, course),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
		)

		err := repo.CreateEnrollmentTx(context.Background(), newEnrollment())
		assert.ErrorIs(t, err, contract.ErrDuplicate)
	})

	mt.Run("counter update matches nothing", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourseEnrollments), mtest.FirstBatch),
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourse), mtest.FirstBatch, course),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		err := repo.CreateEnrollmentTx(context.Background(), newEnrollment())
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})

	mt.Run("commits", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourseEnrollments), mtest.FirstBatch),
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourse), mtest.FirstBatch, course),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(),
		)

		enrollment := newEnrollment()
		require.NoError(t, repo.CreateEnrollmentTx(context.Background(), enrollment))
		assert.NotNil(t, enrollment.CompletedLessons)
	})
}

func TestEnrollmentRepository_CompleteLessonTx(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	progress := func(lessonID string) *entity.UserProgress {
		return &entity.UserProgress{ID: "p1", UserID: "u1", CourseID: "k1", LessonID: lessonID, CompletedAt: time.Now()}
	}

	mt.Run("not enrolled", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourseEnrollments), mtest.FirstBatch))

		_, _, err := repo.CompleteLessonTx(context.Background(), progress("l1"), 1, 2)
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})

	mt.Run("last lesson completes the course", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourseEnrollments), mtest.FirstBatch, enrollmentDoc("l1")),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		e, done, err := repo.CompleteLessonTx(context.Background(), progress("l2"), 0.5, 2)
		require.NoError(t, err)
		assert.True(t, done)
		assert.Equal(t, []string{"l1", "l2"}, e.CompletedLessons)
		assert.Equal(t, 100, e.Progress)
		assert.Equal(t, 1.5, e.HoursSpent)
	})

	mt.Run("repeated lesson writes no progress row", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourseEnrollments), mtest.FirstBatch, enrollmentDoc("l1")),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(),
		)

		e, done, err := repo.CompleteLessonTx(context.Background(), progress("l1"), 1, 2)
		require.NoError(t, err)
		assert.False(t, done)
		assert.Equal(t, 50, e.Progress)
		for _, evt := range mt.GetAllStartedEvents() {
			assert.NotEqual(t, "insert", evt.CommandName)
		}
	})

	mt.Run("enrollment removed before the write", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt, contract.CascadeCourseEnrollments), mtest.FirstBatch, enrollmentDoc()),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		_, _, err := repo.CompleteLessonTx(context.Background(), progress("l1"), 1, 2)
		assert.ErrorIs(t, err, contract.ErrNotFound)
	})
}

func TestCourseRepository_DeleteCourseCascade(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	deleted := func(n int32) bson.D {
		return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n})
	}

	mt.Run("reports counts per collection", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.DB)
		mt.AddMockResponses(deleted(3), deleted(2), deleted(4), deleted(3), deleted(1), deleted(1), mtest.CreateSuccessResponse())

		removed, err := repo.DeleteCourseCascade(context.Background(), "k1")
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{
			contract.CascadeCourseEnrollments: 3,
			contract.CascadeLessons:           2,
			contract.CascadeUserProgress:      4,
			contract.CascadeEnrollments:       3,
			contract.CascadeCertificates:      1,
			contract.CascadeCourse:            1,
		}, removed)
	})

	mt.Run("hard failure names the collection", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.DB)
		mt.AddMockResponses(deleted(3), mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "boom"}))

		removed, err := repo.DeleteCourseCascade(context.Background(), "k1")
		require.Error(t, err)
		assert.Nil(t, removed)
		assert.Contains(t, err.Error(), "failed to clear "+contract.CascadeLessons)
	})

	mt.Run("retried callback starts counting afresh", func(mt *mtest.T) {
		repo := NewCourseRepository(mt.DB)
		mt.AddMockResponses(
			deleted(9),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    112,
				Name:    "WriteConflict",
				Message: "write conflict",
				Labels:  []string{"TransientTransactionError"},
			}),
			mtest.CreateSuccessResponse(),
			deleted(1), deleted(0), deleted(0), deleted(1), deleted(0), deleted(1),
			mtest.CreateSuccessResponse(),
		)

		removed, err := repo.DeleteCourseCascade(context.Background(), "k1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed[contract.CascadeCourseEnrollments])
		assert.Equal(t, int64(0), removed[contract.CascadeLessons])
		assert.Equal(t, int64(1), removed[contract.CascadeCourse])
	})
}
