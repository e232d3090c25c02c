// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMedicineNotFound = errors.New("medicine not found")
	ErrEditorClosed     = errors.New("inventory editor is not open")
)

// ValidationError reports a required form field that was left empty
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
