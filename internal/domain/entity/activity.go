package entity

import "time"

type ActivityType string

const (
	ActivityRegistration      ActivityType = "registration"
	ActivityEnrollment        ActivityType = "enrollment"
	ActivityCourseCompleted   ActivityType = "course_completed"
	ActivityCertificateIssued ActivityType = "certificate_issued"
	ActivityCourseCreated     ActivityType = "course_created"
	ActivityCourseDeleted     ActivityType = "course_deleted"
	ActivityProductCreated    ActivityType = "product_created"
)

// Activity is an append-only audit record shown on the admin feed.
type Activity struct {
	ID          string                 `bson:"_id" json:"id"`
	Type        ActivityType           `bson:"type" json:"type"`
	Title       string                 `bson:"title" json:"title"`
	Description string                 `bson:"description" json:"description"`
	ActorID     string                 `bson:"actor_id" json:"actor_id"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
	Metadata    map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
}
