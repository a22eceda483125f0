package errors

import (
	"errors"
	"net/http"
)

// Error kinds. Every domain error unwraps to exactly one of these.
var (
	// ErrValidation is returned for malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrAuth is returned for bad credentials or a missing/invalid token.
	ErrAuth = errors.New("authentication failed")
	// ErrConflict is returned when a uniqueness rule would be violated.
	ErrConflict = errors.New("conflict")
	// ErrNotFound is returned when no matching row exists or the row is not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited is returned when a client exceeded its request window.
	ErrRateLimited = errors.New("too many requests")
	// ErrInternal is returned for store or configuration failures.
	ErrInternal = errors.New("internal error")
)

// Error is a domain error carrying a client-safe message and a machine code.
type Error struct {
	Kind    error
	Message string
	Code    string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the kind so errors.Is works on wrapped domain errors.
func (e *Error) Unwrap() error {
	return e.Kind
}

// New creates a domain error of the given kind.
func New(kind error, message, code string) *Error {
	return &Error{Kind: kind, Message: message, Code: code}
}

var (
	ErrInvalidCredentials = New(ErrAuth, "invalid email or password", "INVALID_CREDENTIALS")
	ErrWrongPassword      = New(ErrAuth, "password is incorrect", "INVALID_PASSWORD")
	ErrUnauthorized       = New(ErrAuth, "missing or invalid token", "UNAUTHORIZED")
	ErrInvalidBody        = New(ErrValidation, "invalid request body", "INVALID_REQUEST")
	ErrInvalidID          = New(ErrValidation, "invalid id", "INVALID_ID")
	ErrPasswordRequired   = New(ErrValidation, "password is required", "PASSWORD_REQUIRED")
	ErrPasswordTooLong    = New(ErrValidation, "password is too long", "PASSWORD_TOO_LONG")
	ErrNameRequired       = New(ErrValidation, "name is required", "NAME_REQUIRED")
	ErrInvalidImageURL    = New(ErrValidation, "image url is not correctly encoded", "INVALID_IMAGE_URL")
	ErrEmailTaken         = New(ErrConflict, "email is already registered", "EMAIL_TAKEN")
	ErrImageAlreadySaved  = New(ErrConflict, "image already saved for this account", "IMAGE_ALREADY_SAVED")
	ErrAccountNotFound    = New(ErrNotFound, "account not found", "ACCOUNT_NOT_FOUND")
	ErrPostNotFound       = New(ErrNotFound, "post not found or not owned by account", "POST_NOT_FOUND")
	ErrImageNotFound      = New(ErrNotFound, "image not found or not owned by account", "IMAGE_NOT_FOUND")
	ErrTooManySignups     = New(ErrRateLimited, "Too many sign-up attempts. Try again later.", "RATE_LIMITED")
)

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

// StatusCode returns the HTTP status for an error kind.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything that is not a
// domain error collapses into a generic 500 so store details never leak.
func MapErrorToHTTP(err error) *HTTPError {
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Kind != ErrInternal {
		return NewHTTPError(StatusCode(domainErr), domainErr.Message, domainErr.Code)
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
