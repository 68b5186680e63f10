package usecase

import "errors"

// Sentinel errors returned by the usecases. Handlers map them to HTTP status
// codes with errors.Is.
var (
	ErrInvalidInput             = errors.New("invalid input")
	ErrForbidden                = errors.New("forbidden")
	ErrUserNotFound             = errors.New("user not found")
	ErrCourseNotFound           = errors.New("course not found")
	ErrAlreadyEnrolled          = errors.New("already enrolled in this course")
	ErrEnrollmentNotFound       = errors.New("enrollment not found")
	ErrLessonNotFound           = errors.New("lesson not found")
	ErrCertificateNotFound      = errors.New("certificate not found")
	ErrCertificateAlreadyIssued = errors.New("certificate already issued for this course")
	ErrNotEligible              = errors.New("not eligible for a certificate")
	ErrProductNotFound          = errors.New("product not found")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrAccountInactive          = errors.New("account is not active")
	ErrUserExists               = errors.New("user already exists")
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrInternal                 = errors.New("internal server error")
)
