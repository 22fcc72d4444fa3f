package habitify

import (
	"errors"
	"fmt"
)

// APIError represents an unexpected Habitify API error response.
type APIError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("habitify: API error %d: %s (URL: %s)", e.StatusCode, e.Body, e.URL)
}

// IsAPIError extracts an APIError from an error chain.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
