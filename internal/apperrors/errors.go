package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrUnauthorized indicates that the caller's access tier is below the one required.
// It is deliberately distinct from ErrNotFound.
var ErrUnauthorized = errors.New("insufficient access level")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the operation clashes with existing state.
var ErrConflict = errors.New("conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = fmt.Errorf("%w: resource already exists", ErrConflict)

// ErrInsufficientFunds is returned when a debit would exceed the available balance
// and the ledger is configured to enforce sufficient funds.
var ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", ErrConflict)

// ErrStorage indicates an underlying persistence failure.
var ErrStorage = errors.New("storage error")

// AppError carries an HTTP-ish status code and a human readable message next to
// the error kind (one of the sentinels above) and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Kind    error
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause so errors.Is matches either.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAppError builds an AppError, deriving the kind from the status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Kind:    kindForCode(code),
		Err:     err,
	}
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, nil)
}

func NewValidationFailedError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

// NewConflictError reports a uniqueness or state conflict. It matches ErrDuplicate as well.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Kind: ErrDuplicate}
}

func NewStorageError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

func kindForCode(code int) error {
	switch code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrStorage
	}
}
