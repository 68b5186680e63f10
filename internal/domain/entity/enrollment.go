package entity

import (
	"math"
	"time"
)

// Enrollment links one student to one course. It lives in the per-course
// enrollment collection keyed by EnrollmentKey(courseID, userID).
type Enrollment struct {
	ID               string     `bson:"_id" json:"id"`
	CourseID         string     `bson:"course_id" json:"course_id"`
	UserID           string     `bson:"user_id" json:"user_id"`
	Progress         int        `bson:"progress" json:"progress"`
	Completed        bool       `bson:"completed" json:"completed"`
	CompletedAt      *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	HoursSpent       float64    `bson:"hours_spent" json:"hours_spent"`
	CompletedLessons []string   `bson:"completed_lessons" json:"completed_lessons"`
	EnrolledAt       time.Time  `bson:"enrolled_at" json:"enrolled_at"`
	LastAccessedAt   time.Time  `bson:"last_accessed_at" json:"last_accessed_at"`
}

// EnrollmentKey builds the composite primary key of an enrollment.
func EnrollmentKey(courseID, userID string) string {
	return courseID + ":" + userID
}

// HasCompletedLesson reports whether lessonID was already recorded.
func (e *Enrollment) HasCompletedLesson(lessonID string) bool {
	for _, id := range e.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

// CompleteLesson adds lessonID to the completed set, adds hoursSpent and
// recomputes Progress over totalLessons. It reports whether the lesson was
// new and whether this call finished the course.
func (e *Enrollment) CompleteLesson(lessonID string, hoursSpent float64, totalLessons int, now time.Time) (newLesson, justCompleted bool) {
	if !e.HasCompletedLesson(lessonID) {
		e.CompletedLessons = append(e.CompletedLessons, lessonID)
		newLesson = true
	}
	e.HoursSpent += hoursSpent
	e.LastAccessedAt = now
	e.Progress = ProgressPercent(len(e.CompletedLessons), totalLessons)
	if e.Progress >= 100 && !e.Completed {
		e.Completed = true
		e.CompletedAt = &now
		justCompleted = true
	}
	return newLesson, justCompleted
}

// ProgressPercent rounds completed/total to a whole percent capped at 100.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(completed) / float64(total)))
	if p > 100 {
		p = 100
	}
	return p
}

// EnrollmentIndex is the root-level lookup document for "my courses".
type EnrollmentIndex struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	CourseID   string    `bson:"course_id" json:"course_id"`
	EnrolledAt time.Time `bson:"enrolled_at" json:"enrolled_at"`
}

// UserProgress records a single completed lesson.
type UserProgress struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	CourseID    string    `bson:"course_id" json:"course_id"`
	LessonID    string    `bson:"lesson_id" json:"lesson_id"`
	CompletedAt time.Time `bson:"completed_at" json:"completed_at"`
}
