package todoapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized matches any APIError with status 401 or 403.
	ErrUnauthorized = errors.New("todo api rejected credentials")

	// ErrInvalidResponse indicates the response body was not the JSON
	// envelope the API documents.
	ErrInvalidResponse = errors.New("invalid todo api response")
)

// APIError is a non-2xx answer from the todo API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("todo api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("todo api returned status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}
