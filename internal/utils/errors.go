package utils

import (
	"errors"
	"net/http"
	"os"
)

// Machine-readable error codes returned to API clients.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeFreelancerNotFound = "FREELANCER_NOT_FOUND"
	CodeVideoNotFound      = "VIDEO_NOT_FOUND"
	CodeMissingAdmin       = "MISSING_ADMIN"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError carries an HTTP status, a machine code and a human message.
// Stores and services return these for conditions the handler should
// translate into a typed JSON error instead of a generic 500.
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: CodeValidation, Message: message}
}

func NewNotFoundError(code string, message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: code, Message: message}
}

func NewConfigurationError(code string, message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: code, Message: message}
}

// WriteError renders err as a JSON error response. AppErrors keep their
// status and code; anything else becomes a 500 with the detail suppressed
// outside development mode.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.Status, Envelope{"code": appErr.Code, "message": appErr.Message})
		return
	}

	message := "Internal Server Error"
	if os.Getenv("ENV") == "development" {
		message = err.Error()
	}
	WriteJSON(w, http.StatusInternalServerError, Envelope{"code": CodeInternal, "message": message})
}
