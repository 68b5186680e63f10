package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourse_Defaults(t *testing.T) {
	env := newTestEnv(t, false)

	course, err := env.courses.CreateCourse(context.Background(), "admin-1", usecasecontract.CourseInput{
		Title: "  Intro to Go!  ",
		Sections: []entity.CourseSection{
			{Title: "Start", Lessons: []entity.LessonOutline{{Title: "Hello"}}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Intro to Go!", course.Title)
	assert.True(t, strings.HasPrefix(course.Slug, "intro-to-go-"))
	assert.Equal(t, entity.CourseLevelBeginner, course.Level)
	assert.Equal(t, entity.CourseStatusDraft, course.Status)
	assert.Zero(t, course.StudentCount)
	assert.NotEmpty(t, course.Sections[0].Lessons[0].ID)
}

func TestCreateCourse_SlugFromTitle(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	tests := []struct {
		title  string
		slug   string
		prefix string
	}{
		{title: "Café Génial", prefix: "cafe-genial-"},
		{title: "!!!", prefix: "course-"},
		{title: "Ignored", slug: "Mon Cours Préféré", prefix: "mon-cours-prefere"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			course, err := env.courses.CreateCourse(ctx, "admin-1", usecasecontract.CourseInput{Title: tt.title, Slug: tt.slug})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(course.Slug, tt.prefix), course.Slug)
		})
	}
}

func TestCreateCourse_Validation(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	tests := []struct {
		name  string
		input usecasecontract.CourseInput
	}{
		{"empty title", usecasecontract.CourseInput{Title: " "}},
		{"negative price", usecasecontract.CourseInput{Title: "A", Price: -1}},
		{"bad level", usecasecontract.CourseInput{Title: "A", Level: "expert"}},
		{"bad status", usecasecontract.CourseInput{Title: "A", Status: "deleted"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.courses.CreateCourse(ctx, "admin-1", tt.input)
			assert.ErrorIs(t, err, usecase.ErrInvalidInput)
		})
	}

	_, err := env.courses.CreateCourse(ctx, "admin-1", usecasecontract.CourseInput{Title: "A", Slug: "go"})
	require.NoError(t, err)
	_, err = env.courses.CreateCourse(ctx, "admin-1", usecasecontract.CourseInput{Title: "B", Slug: "go"})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestUpdateCourse_InvalidatesCache(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	course := env.createCourse(t, "Go Basics")

	_, err := env.courses.GetCourse(ctx, course.Slug)
	require.NoError(t, err)

	title := "Go Fundamentals"
	updated, err := env.courses.UpdateCourse(ctx, course.ID, usecasecontract.CourseUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	got, err := env.courses.GetCourse(ctx, course.Slug)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
}

func TestUpdateCourse_Errors(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	course := env.createCourse(t, "Go Basics")

	price := -5.0
	_, err := env.courses.UpdateCourse(ctx, course.ID, usecasecontract.CourseUpdate{Price: &price})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = env.courses.UpdateCourse(ctx, "missing", usecasecontract.CourseUpdate{})
	assert.ErrorIs(t, err, usecase.ErrCourseNotFound)
}

func TestDeleteCourse_NotFound(t *testing.T) {
	env := newTestEnv(t, false)

	result, err := env.courses.DeleteCourse(context.Background(), "admin-1", "missing")

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, usecasecontract.DeleteOutcomeNotFound, result.Outcome)
	assert.Equal(t, usecase.ErrCourseNotFound.Error(), result.Message)
}

func TestDeleteCourse_CascadeFailureKeepsEverything(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	course := env.createCourse(t, "Go Basics")
	_, err := env.enrollments.Enroll(ctx, "u1", course.ID)
	require.NoError(t, err)
	env.store.FailCascade = true

	result, err := env.courses.DeleteCourse(ctx, "admin-1", course.ID)

	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, usecasecontract.DeleteOutcomeFailed, result.Outcome)
	assert.Equal(t, "failed to delete course", result.Message)
	assert.NotContains(t, result.Message, "transaction aborted")
	_, err = env.courses.GetCourse(ctx, course.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, env.store.EnrollmentIndexCount(course.ID))
}

func TestDeleteCourse_StillPresent(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	course := env.createCourse(t, "Go Basics")
	env.store.KeepCourseOnDelete = true

	result, err := env.courses.DeleteCourse(ctx, "admin-1", course.ID)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, usecasecontract.DeleteOutcomeStillPresent, result.Outcome)
	assert.Contains(t, result.Message, "still present")
}

func TestSetThumbnail(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	course := env.createCourse(t, "Go Basics")

	_, err := env.courses.SetThumbnail(ctx, course.ID, "notes.txt", "text/plain", strings.NewReader("hi"))
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	updated, err := env.courses.SetThumbnail(ctx, course.ID, "cover.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.ThumbnailURL, "/api/v1/files/"))
}

func TestListCourses_Filters(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	env.createCourse(t, "Go Basics")
	env.createCourse(t, "Rust Basics")
	_, err := env.courses.CreateCourse(ctx, "admin-1", usecasecontract.CourseInput{Title: "Go Drafts"})
	require.NoError(t, err)

	published := entity.CourseStatusPublished
	courses, total, err := env.courses.ListCourses(ctx, usecasecontract.CourseFilter{Status: &published, Search: "go"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go Basics", courses[0].Title)
}

func TestLessons(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	course := env.createCourse(t, "Go Basics")

	_, err := env.courses.CreateLesson(ctx, course.Slug, usecasecontract.LessonInput{Title: "Second", Order: 2})
	require.NoError(t, err)
	_, err = env.courses.CreateLesson(ctx, course.ID, usecasecontract.LessonInput{Title: "First", Order: 1})
	require.NoError(t, err)
	_, err = env.courses.CreateLesson(ctx, course.ID, usecasecontract.LessonInput{Title: ""})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	lessons, err := env.courses.ListLessons(ctx, course.Slug)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "First", lessons[0].Title)
}
