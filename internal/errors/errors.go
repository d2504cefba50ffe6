package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned on login when the username does
	// not exist or the password does not match. The two causes are
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrForbidden is returned when role or ownership checks deny an
	// operation. Non-admins also get it for records that do not exist,
	// so a denial never confirms that a record is there.
	ErrForbidden = errors.New("forbidden")
	// ErrWorklogNotFound is returned when an admin targets an absent record.
	ErrWorklogNotFound = errors.New("worklog not found")
	// ErrTeamNotFound is returned when a team lookup misses.
	ErrTeamNotFound = errors.New("team not found")
	// ErrEmployeeNotFound is returned when an employee lookup misses.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username_taken")
	// ErrOwnerNotFound is returned when a supplied owner id resolves to
	// no employee.
	ErrOwnerNotFound = errors.New("owner_not_found")
	// ErrOwnerAlreadyLinked is returned when another account already
	// links to the supplied employee.
	ErrOwnerAlreadyLinked = errors.New("owner_already_linked")
	// ErrInvalidOwnerID is returned for a malformed or empty owner id.
	ErrInvalidOwnerID = errors.New("invalid_owner_id")
	// ErrTeamNameTaken is returned when creating or renaming a team to
	// an existing name.
	ErrTeamNameTaken = errors.New("team_name_taken")
	// ErrInvalidTeamRef is returned when an employee references a
	// nonexistent team.
	ErrInvalidTeamRef = errors.New("invalid_team_id")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
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

// MapErrorToHTTP maps domain errors to HTTP errors: 401 for failed
// authentication, 403 for denied authorization, 404 for admin-visible
// missing records and 400 for validation failures.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrWorklogNotFound),
		errors.Is(err, ErrTeamNotFound),
		errors.Is(err, ErrEmployeeNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrOwnerNotFound),
		errors.Is(err, ErrOwnerAlreadyLinked),
		errors.Is(err, ErrInvalidOwnerID),
		errors.Is(err, ErrTeamNameTaken),
		errors.Is(err, ErrInvalidTeamRef):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
