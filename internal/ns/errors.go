package ns

import "fmt"

// APIError is returned for any non-2xx answer from the NS gateway.
type APIError struct {
	StatusCode int
	StatusText string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("NS API error: %d %s", e.StatusCode, e.StatusText)
}

// NewAPIError creates a new NS API error
func NewAPIError(statusCode int, statusText string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		StatusText: statusText,
	}
}
