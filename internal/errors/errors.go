package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNoCompany is returned when the acting user is not assigned to a company.
	ErrNoCompany = errors.New("user not associated with a company")
	// ErrValidation is returned when required input is missing or malformed.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound is returned when an entity is absent or not owned by the caller's company.
	ErrNotFound = errors.New("not found")
	// ErrCompanyNotEmpty is returned when deleting a company that still owns data.
	ErrCompanyNotEmpty = errors.New("company has associated users, responses or documents")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when creating a user with an email already in use.
	ErrEmailTaken = errors.New("user already exists")
	// ErrBlobNotFound is returned when storage denies or cannot find a blob.
	ErrBlobNotFound = errors.New("file not found in storage")
	// ErrStorageNotConfigured is returned when storage or pull-zone credentials are missing.
	ErrStorageNotConfigured = errors.New("storage not configured")
)

// ErrorResponse is the JSON body returned for every failed request. Detail
// carries the underlying error string and is omitted in production.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Detail     string
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

// ToErrorResponse converts an HTTPError to ErrorResponse. Detail is only
// included when includeDetail is true (non-production configuration).
func (e *HTTPError) ToErrorResponse(includeDetail bool) ErrorResponse {
	resp := ErrorResponse{Message: e.Message}
	if includeDetail {
		resp.Detail = e.Detail
	}
	return resp
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNoCompany):
		return NewHTTPError(http.StatusForbidden, ErrNoCompany.Error(), "NO_COMPANY")
	case errors.Is(err, ErrValidation):
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: err.Error(), Code: "VALIDATION_ERROR"}
	case errors.Is(err, ErrNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Message: err.Error(), Code: "NOT_FOUND"}
	case errors.Is(err, ErrBlobNotFound):
		return NewHTTPError(http.StatusNotFound, ErrBlobNotFound.Error(), "FILE_NOT_FOUND")
	case errors.Is(err, ErrCompanyNotEmpty):
		return NewHTTPError(http.StatusConflict, ErrCompanyNotEmpty.Error(), "COMPANY_NOT_EMPTY")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrStorageNotConfigured):
		return NewHTTPError(http.StatusInternalServerError, "server storage configuration error", "STORAGE_CONFIG")
	default:
		e := NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
		if err != nil {
			e.Detail = err.Error()
		}
		return e
	}
}
