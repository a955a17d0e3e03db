package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// It never says which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for malformed, badly signed, unknown or revoked tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a token or its stored session has expired.
	ErrTokenExpired = errors.New("token expired")
	// ErrForbidden is returned when the caller is known but lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrInviteNotFound covers unknown, consumed, expired and email-mismatched invites alike.
	ErrInviteNotFound = errors.New("invite not found")
	// ErrRestaurantNotFound is returned when a restaurant does not exist or is not visible.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrMemberNotFound is returned when a membership row does not exist.
	ErrMemberNotFound = errors.New("member not found")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrOwnerImmutable is returned when a member edit targets the restaurant owner.
	ErrOwnerImmutable = errors.New("restaurant owner cannot be modified or removed")
	// ErrInvalidTenantRole is returned when a role outside MANAGER/WAITER is assigned.
	ErrInvalidTenantRole = errors.New("invalid tenant role")
	// ErrInvalidInput is returned for malformed request values.
	ErrInvalidInput = errors.New("invalid input")
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

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
	{ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrInviteNotFound, http.StatusNotFound, "INVITE_NOT_FOUND"},
	{ErrRestaurantNotFound, http.StatusNotFound, "RESTAURANT_NOT_FOUND"},
	{ErrMemberNotFound, http.StatusNotFound, "MEMBER_NOT_FOUND"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
	{ErrOwnerImmutable, http.StatusConflict, "OWNER_IMMUTABLE"},
	{ErrInvalidTenantRole, http.StatusBadRequest, "INVALID_TENANT_ROLE"},
	{ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are
// matched with errors.Is; anything unknown becomes a 500.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
