package errors

import "errors"

// Custom application errors
var (
	ErrUserNotFound       = errors.New("User not found")
	ErrMedicationNotFound = errors.New("Medication not found")
	ErrScheduleNotFound   = errors.New("Schedule not found")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrPasswordTooShort   = errors.New("Password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidToken       = errors.New("Invalid or expired token")
	ErrLoginRequired      = errors.New("Login required")
	ErrInvalidInput       = errors.New("invalid input")
	// LINE link code unknown or already used
	ErrInvalidLinkCode    = errors.New("invalid link code")
	ErrForbidden          = errors.New("Invalid or missing cron secret")
	ErrDatabaseOperation  = errors.New("database operation failed")
	// OpenFDA, Open-Meteo, OpenAI
	ErrUpstream           = errors.New("upstream service error")
	ErrNotConfigured      = errors.New("service not configured")
	ErrDelivery           = errors.New("notification delivery failed")
	ErrScheduling         = errors.New("scheduling failed")
	ErrEvaluationLocked   = errors.New("reminder evaluation lock not acquired")
	ErrInternalServer     = errors.New("internal server error")
)
