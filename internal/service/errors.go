package service

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateIdentity covers both email and student id collisions.
	ErrDuplicateIdentity = errors.New("account already exists with this email or student ID")
	// ErrInvalidCredentials is deliberately shared by the unknown-email
	// and wrong-password paths so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleNotAllowed     = errors.New("not authorized as student")
	ErrNotFound           = errors.New("account not found")
)

// ValidationError reports a rejected request field. It maps to a 400 at
// the HTTP boundary.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
