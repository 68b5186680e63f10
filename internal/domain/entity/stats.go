package entity

import "time"

// DashboardStats are the live counters shown on the admin dashboard.
type DashboardStats struct {
	Users        int64 `bson:"users" json:"users"`
	Courses      int64 `bson:"courses" json:"courses"`
	Enrollments  int64 `bson:"enrollments" json:"enrollments"`
	Certificates int64 `bson:"certificates" json:"certificates"`
	Products     int64 `bson:"products" json:"products"`
}

// StatsSnapshot is a point-in-time copy of DashboardStats.
type StatsSnapshot struct {
	ID             string `bson:"_id" json:"id"`
	DashboardStats `bson:",inline"`
	TakenAt        time.Time `bson:"taken_at" json:"taken_at"`
}

// ContactSubmission is a message left through the public contact form.
type ContactSubmission struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Subject   string    `bson:"subject" json:"subject"`
	Message   string    `bson:"message" json:"message"`
	Handled   bool      `bson:"handled" json:"handled"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// FileInfo describes a stored upload.
type FileInfo struct {
	ID          string
	Filename    string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}
