package entity

import "time"

// CourseStatus is the publication state of a course.
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

func (s CourseStatus) IsValid() bool {
	switch s {
	case CourseStatusDraft, CourseStatusPublished, CourseStatusArchived:
		return true
	}
	return false
}

// CourseLevel is the difficulty of a course.
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "beginner"
	CourseLevelIntermediate CourseLevel = "intermediate"
	CourseLevelAdvanced     CourseLevel = "advanced"
)

func (l CourseLevel) IsValid() bool {
	switch l {
	case CourseLevelBeginner, CourseLevelIntermediate, CourseLevelAdvanced:
		return true
	}
	return false
}

// Course is a catalog entry. StudentCount is a denormalized counter
// maintained by the enrollment transaction.
type Course struct {
	ID           string          `bson:"_id,omitempty" json:"id"`
	Slug         string          `bson:"slug" json:"slug"`
	Title        string          `bson:"title" json:"title"`
	Description  string          `bson:"description" json:"description"`
	Category     string          `bson:"category" json:"category"`
	Level        CourseLevel     `bson:"level" json:"level"`
	Price        float64         `bson:"price" json:"price"`
	Status       CourseStatus    `bson:"status" json:"status"`
	StudentCount int64           `bson:"student_count" json:"student_count"`
	ThumbnailURL string          `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	InstructorID string          `bson:"instructor_id,omitempty" json:"instructor_id,omitempty"`
	Sections     []CourseSection `bson:"sections" json:"sections"`
	CreatedAt    time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `bson:"updated_at" json:"updated_at"`
}

// CourseSection groups lesson outlines embedded in the course document.
type CourseSection struct {
	Title   string          `bson:"title" json:"title"`
	Lessons []LessonOutline `bson:"lessons" json:"lessons"`
}

type LessonOutline struct {
	ID              string `bson:"id" json:"id"`
	Title           string `bson:"title" json:"title"`
	DurationMinutes int    `bson:"duration_minutes" json:"duration_minutes"`
}

// OutlineLessonIDs returns the ids of all lessons embedded in the sections.
func (c *Course) OutlineLessonIDs() []string {
	var ids []string
	for _, s := range c.Sections {
		for _, l := range s.Lessons {
			if l.ID != "" {
				ids = append(ids, l.ID)
			}
		}
	}
	return ids
}

// Lesson is a standalone lesson document referencing its course.
type Lesson struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	CourseID        string    `bson:"course_id" json:"course_id"`
	Title           string    `bson:"title" json:"title"`
	Content         string    `bson:"content" json:"content"`
	Order           int       `bson:"order" json:"order"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
