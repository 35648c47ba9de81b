package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrAuthFailed        = errors.New("incorrect email or password")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrForbidden         = errors.New("access forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInternal          = errors.New("internal error")
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrMessageNotFound   = fmt.Errorf("message %w", ErrNotFound)
	ErrIncorrectPasscode = fmt.Errorf("incorrect passcode: %w", ErrForbidden)
)

// ValidationError is a recoverable input problem tied to one field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ErrUserExists is the duplicate-identity validation failure.
var ErrUserExists error = &ValidationError{Field: "username", Reason: "username or email already exists"}

// AuthFailureReason distinguishes verification failures for logging. It is
// never shown to the caller.
type AuthFailureReason string

const (
	UnknownIdentifier         AuthFailureReason = "unknown_identifier"
	MissingCredentialMaterial AuthFailureReason = "missing_credential_material"
	IncorrectSecret           AuthFailureReason = "incorrect_secret"
)

// AuthFailure renders the same message whatever the reason.
type AuthFailure struct {
	Reason AuthFailureReason
}

func (e *AuthFailure) Error() string { return ErrAuthFailed.Error() }

func (e *AuthFailure) Unwrap() error { return ErrAuthFailed }

// InternalError wraps a collaborator fault. Err is for logs only.
type InternalError struct {
	Op  string
	Err error
}

func NewInternalError(op string, err error) *InternalError {
	return &InternalError{Op: op, Err: err}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

func (e *InternalError) Is(target error) bool { return target == ErrInternal }
