package domain

import "errors"

var (
	ErrInvalid          = errors.New("invalid input")
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("item not found")

	// ErrUnknownCategory is returned when an item references a category
	// that does not exist.
	ErrUnknownCategory = errors.New("category does not exist")
)

// ValidationError describes the first field that failed validation.
// It matches ErrInvalid with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}
