package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateKey
	KindCast
	KindNotFound
	KindAuthentication
	KindAuthorization
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindDuplicateKey:
		return "DuplicateKeyError"
	case KindCast:
		return "CastError"
	case KindNotFound:
		return "NotFoundError"
	case KindAuthentication:
		return "AuthenticationError"
	case KindAuthorization:
		return "AuthorizationError"
	case KindConflict:
		return "ConflictError"
	default:
		return "InternalError"
	}
}

// AppError is a classified application error.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	// Fields carries per-field failures for validation errors.
	Fields map[string]string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError with the same code so that wrapped copies of a
// sentinel still satisfy errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Kind == t.Kind
}

func newError(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

var (
	ErrRoomNotFound    = newError(KindNotFound, "ROOM_NOT_FOUND", "room not found")
	ErrBookingNotFound = newError(KindNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrGuestNotFound   = newError(KindNotFound, "GUEST_NOT_FOUND", "guest not found")

	// ErrCapacityExceeded is returned when a booking carries more guests than the room holds.
	ErrCapacityExceeded = newError(KindValidation, "CAPACITY_EXCEEDED", "number of guests exceeds room capacity")
	// ErrInvalidTransition is returned when check-in/check-out is attempted from the wrong status.
	ErrInvalidTransition = newError(KindValidation, "INVALID_TRANSITION", "booking status does not allow this transition")
	// ErrDateConflict is returned when the room already has an active booking for the range.
	ErrDateConflict = newError(KindConflict, "DATE_CONFLICT", "room is not available for selected dates")

	ErrEmailTaken      = &AppError{Kind: KindDuplicateKey, Code: "DUPLICATE_KEY", Message: "email already exists", Fields: map[string]string{"email": "already exists"}}
	ErrRoomNumberTaken = &AppError{Kind: KindDuplicateKey, Code: "DUPLICATE_KEY", Message: "roomNumber already exists", Fields: map[string]string{"roomNumber": "already exists"}}

	ErrMissingToken       = newError(KindAuthentication, "MISSING_TOKEN", "no token provided, please authenticate")
	ErrInvalidToken       = newError(KindAuthentication, "INVALID_TOKEN", "invalid token")
	ErrExpiredToken       = newError(KindAuthentication, "EXPIRED_TOKEN", "token has expired")
	ErrUnknownUser        = newError(KindAuthentication, "UNKNOWN_USER", "invalid token, user not found")
	ErrUnauthenticated    = newError(KindAuthentication, "UNAUTHENTICATED", "authentication required")
	ErrInvalidCredentials = newError(KindAuthentication, "INVALID_CREDENTIALS", "invalid email or password")

	ErrForbidden = newError(KindAuthorization, "FORBIDDEN", "you do not have permission to access this resource")
)

// Validation builds a validation error with per-field messages.
func Validation(message string, fields map[string]string) *AppError {
	if message == "" {
		message = "validation failed"
	}
	return &AppError{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: message, Fields: fields}
}

// Cast builds an error for a malformed identifier.
func Cast(field string, err error) *AppError {
	return &AppError{Kind: KindCast, Code: "INVALID_ID", Message: "invalid " + field + " format", Err: err}
}

// Duplicate builds a unique-constraint error naming the offending field.
func Duplicate(field string) *AppError {
	return &AppError{
		Kind:    KindDuplicateKey,
		Code:    "DUPLICATE_KEY",
		Message: field + " already exists",
		Fields:  map[string]string{field: "already exists"},
	}
}

// Forbidden builds an authorization error with a specific message.
func Forbidden(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Code: ErrForbidden.Code, Message: message}
}

// WithMessage returns a copy of a sentinel carrying a more specific message.
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// ErrorResponse represents the standardized response envelope for failures.
type ErrorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Stack   string            `json:"stack,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string]string
	// Classified is false for the unclassified 500 fallback.
	Classified bool
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
		Classified: true,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Status:  "error",
		Message: e.Message,
		Code:    e.Code,
		Errors:  e.Fields,
	}
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindCast:
		return http.StatusBadRequest
	case KindDuplicateKey, KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToHTTP maps domain, store and framework errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Kind == KindInternal {
			return internal()
		}
		httpErr := NewHTTPError(StatusFor(appErr.Kind), appErr.Message, appErr.Code)
		httpErr.Fields = appErr.Fields
		return httpErr
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, "resource not found", "NOT_FOUND")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return NewHTTPError(http.StatusConflict, "resource already exists", "DUPLICATE_KEY")
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg := http.StatusText(echoErr.Code)
		if m, ok := echoErr.Message.(string); ok && m != "" {
			msg = m
		}
		return NewHTTPError(echoErr.Code, msg, "HTTP_"+fmt.Sprint(echoErr.Code))
	}

	return internal()
}

func internal() *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    "internal server error",
		Code:       "INTERNAL_ERROR",
	}
}
