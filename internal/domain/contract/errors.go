package contract

import "errors"

// Storage-level sentinels returned by repository implementations.
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
	// ErrDuplicateCode is returned when a certificate verification code
	// collides with an existing one. ErrDuplicate covers a second
	// certificate for the same (user, course) pair.
	ErrDuplicateCode = errors.New("duplicate verification code")
)
