package usecase_test

import (
	"context"
	"testing"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/validator"
	"github.com/mikiasgoitom/Learnify/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
	"github.com/mikiasgoitom/Learnify/internal/usecase/mocks"
	"github.com/stretchr/testify/require"
)

// testEnv wires every usecase to one shared in-memory store.
type testEnv struct {
	store  *mocks.MemoryStore
	cache  *mocks.MemoryCache
	files  *mocks.MemoryFiles
	mailer *mocks.RecordingMailer
	uuids  *mocks.FixedUUIDGen
	cfg    *mocks.StaticConfig

	activity    *usecase.ActivityUsecase
	users       *usecase.UserUsecase
	courses     *usecase.CourseUsecase
	enrollments *usecase.EnrollmentUsecase
	certs       *usecase.CertificateUsecase
	products    *usecase.ProductUsecase
	dashboard   *usecase.DashboardUsecase
	contact     *usecase.ContactUsecase
}

func newTestEnv(t *testing.T, requireCompletion bool) *testEnv {
	t.Helper()
	env := &testEnv{
		store:  mocks.NewMemoryStore(),
		cache:  mocks.NewMemoryCache(),
		files:  mocks.NewMemoryFiles(),
		mailer: &mocks.RecordingMailer{},
		uuids:  &mocks.FixedUUIDGen{},
		cfg:    mocks.NewStaticConfig(),
	}
	logger := mocks.NopLogger{}
	s := env.store

	env.activity = usecase.NewActivityUsecase(s.Activities(), env.uuids, logger)
	env.users = usecase.NewUserUsecase(s.Users(), s.Tokens(), mocks.PlainHasher{}, mocks.FakeJWT{}, env.mailer,
		env.activity, logger, env.cfg, validator.NewValidator(), env.uuids, &mocks.SeqRandom{})
	env.courses = usecase.NewCourseUsecase(s.Courses(), s.Lessons(), env.files, env.activity, env.uuids, logger)
	env.courses.SetCourseCache(env.cache)
	env.enrollments = usecase.NewEnrollmentUsecase(s.Enrollments(), s.Courses(), s.Lessons(), env.activity, env.uuids, logger)
	env.enrollments.SetCourseCache(env.cache)
	policy := usecase.NewEligibilityPolicy(requireCompletion, s.Enrollments())
	env.certs = usecase.NewCertificateUsecase(s.Certificates(), s.Courses(), s.Enrollments(), s.Users(),
		mocks.URLRenderer{BaseURL: "https://learnify.test"}, policy, env.mailer, env.activity, env.uuids, logger)
	env.products = usecase.NewProductUsecase(s.Products(), env.files, env.activity, env.uuids, logger)
	env.dashboard = usecase.NewDashboardUsecase(s.Stats(), env.uuids, logger)
	env.dashboard.SetCache(env.cache)
	env.contact = usecase.NewContactUsecase(s.Contacts(), validator.NewValidator(), env.uuids, logger)
	return env
}

func (env *testEnv) registerStudent(t *testing.T, username string) *entity.User {
	t.Helper()
	user, err := env.users.Register(context.Background(), username, username+"@example.com", "Password123!", "Student "+username)
	require.NoError(t, err)
	return user
}

func (env *testEnv) createCourse(t *testing.T, title string, lessons ...string) *entity.Course {
	t.Helper()
	outline := make([]entity.LessonOutline, 0, len(lessons))
	for _, id := range lessons {
		outline = append(outline, entity.LessonOutline{ID: id, Title: "Lesson " + id})
	}
	course, err := env.courses.CreateCourse(context.Background(), "admin-1", usecasecontract.CourseInput{
		Title:    title,
		Status:   entity.CourseStatusPublished,
		Sections: []entity.CourseSection{{Title: "Main", Lessons: outline}},
	})
	require.NoError(t, err)
	return course
}
