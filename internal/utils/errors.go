package utils

import (
	"errors"
	"net/http"
)

// Store-level errors. Every repository implementation translates its
// driver errors into these so services never see engine specifics.
var (
	ErrNotFound            = errors.New("not_found")
	ErrDuplicateKey        = errors.New("duplicate_key")
	ErrForeignKeyViolation = errors.New("foreign_key_violation")
	ErrValueOutOfRange     = errors.New("value_out_of_range")
)

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInactiveAccount    = errors.New("inactive_account")
)

// AppError carries the HTTP mapping of a service failure up to the controller.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeValidation, Message: message, Err: err}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Code: ErrCodeInternal, Message: message, Err: err}
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
