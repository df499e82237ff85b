package entity

import "errors"

var (
	// ErrNotFound is wrapped by repositories when a row to change is gone.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput is matched by every *ValidationError.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError names the field a user must fix.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// Unwrap lets errors.Is(err, ErrInvalidInput) hold for any validation failure.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
