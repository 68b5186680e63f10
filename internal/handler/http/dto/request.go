package dto

import (
	"time"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
)

type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,containsuppercase,containslowercase,containsdigit,containssymbol"`
	DisplayName string `json:"display_name" binding:"omitempty,max=100"`
}

// LoginRequest accepts an email or a username as Identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Username    *string `json:"username" binding:"omitempty,min=3,max=50"`
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,url"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Verifier string `json:"verifier" binding:"required"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type SetRoleRequest struct {
	Role entity.UserRole `json:"role" binding:"required,oneof=admin student"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type CourseRequest struct {
	Title       string                 `json:"title" binding:"required,max=200"`
	Slug        string                 `json:"slug" binding:"omitempty,max=200"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Level       string                 `json:"level" binding:"omitempty,courselevel"`
	Price       float64                `json:"price" binding:"gte=0"`
	Status      string                 `json:"status" binding:"omitempty,coursestatus"`
	Sections    []entity.CourseSection `json:"sections"`
}

type UpdateCourseRequest struct {
	Title       *string                `json:"title" binding:"omitempty,max=200"`
	Description *string                `json:"description"`
	Category    *string                `json:"category"`
	Level       *string                `json:"level" binding:"omitempty,courselevel"`
	Price       *float64               `json:"price" binding:"omitempty,gte=0"`
	Status      *string                `json:"status" binding:"omitempty,coursestatus"`
	Sections    []entity.CourseSection `json:"sections"`
}

type LessonRequest struct {
	Title           string `json:"title" binding:"required"`
	Content         string `json:"content"`
	Order           int    `json:"order" binding:"gte=0"`
	DurationMinutes int    `json:"duration_minutes" binding:"gte=0"`
}

type CompleteLessonRequest struct {
	HoursSpent float64 `json:"hours_spent" binding:"gte=0"`
}

type IssueCertificateRequest struct {
	UserID         string     `json:"user_id" binding:"required"`
	CourseID       string     `json:"course_id" binding:"required"`
	RecipientName  string     `json:"recipient_name" binding:"required"`
	CourseName     string     `json:"course_name"`
	CompletionDate *time.Time `json:"completion_date"`
	Score          *float64   `json:"score" binding:"omitempty,gte=0,lte=100"`
}

type RevokeCertificateRequest struct {
	Reason string `json:"reason"`
}

type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"gte=0"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Features    []string `json:"features"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Features    []string `json:"features"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}
