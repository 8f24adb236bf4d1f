package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every [ValidationError].
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateMembership is returned when adding a lyric that is already in a playlist.
	ErrDuplicateMembership = errors.New("lyric already in playlist")

	// ErrInvalidTheme is returned when parsing a theme name other than light or dark.
	ErrInvalidTheme = errors.New("invalid theme")
)

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
