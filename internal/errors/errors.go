package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is the root of every input validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateLogin is returned when a login name is already registered.
	ErrDuplicateLogin = errors.New("login_name already exists.")
	// ErrInvalidCredentials is returned for an unknown login name or a wrong password.
	ErrInvalidCredentials = errors.New("Invalid login name or password.")
	// ErrUnauthenticated is returned when no valid session accompanies a request.
	ErrUnauthenticated = errors.New("Unauthorized")
	// ErrNotLoggedIn is returned when logging out without a session.
	ErrNotLoggedIn = errors.New("User is not logged in.")
	// ErrNotFound is the root of every missing-entity failure.
	ErrNotFound = errors.New("not found")
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = &notFoundError{msg: "User not found."}
	// ErrPhotoNotFound is returned when a photo id does not resolve.
	ErrPhotoNotFound = &notFoundError{msg: "Photo not found."}
	// ErrInvalidID is returned when a path id is not a well-formed identifier.
	ErrInvalidID = &ValidationError{Field: "id", Message: "Invalid id format."}
	// ErrMissingSchemaInfo is returned when the dataset was never loaded.
	ErrMissingSchemaInfo = errors.New("Missing SchemaInfo")
)

type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Unwrap() error { return ErrNotFound }

// ValidationError reports the first input field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Required builds the standard message for a missing or blank field.
func Required(field string) *ValidationError {
	return NewValidationError(field, field+" is required and cannot be empty.")
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors never leak
// their text to the client.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return NewHTTPError(http.StatusBadRequest, verr.Message, "VALIDATION_ERROR")
	case errors.Is(err, ErrDuplicateLogin):
		return NewHTTPError(http.StatusBadRequest, ErrDuplicateLogin.Error(), "DUPLICATE_LOGIN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNotLoggedIn):
		return NewHTTPError(http.StatusBadRequest, ErrNotLoggedIn.Error(), "NOT_LOGGED_IN")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrPhotoNotFound):
		return NewHTTPError(http.StatusNotFound, ErrPhotoNotFound.Error(), "PHOTO_NOT_FOUND")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "record not found", "NOT_FOUND")
	case errors.Is(err, ErrMissingSchemaInfo):
		return NewHTTPError(http.StatusInternalServerError, ErrMissingSchemaInfo.Error(), "MISSING_SCHEMA_INFO")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
