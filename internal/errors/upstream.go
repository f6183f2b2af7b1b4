package errors

import (
	"errors"
	"fmt"
)

// UpstreamStatusError is returned when a metadata source answers with a
// non-success HTTP status.
type UpstreamStatusError struct {
	Source     string
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Source, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Source, e.StatusCode)
}

// NewUpstreamStatusError creates an UpstreamStatusError
func NewUpstreamStatusError(source string, statusCode int, body string) *UpstreamStatusError {
	return &UpstreamStatusError{Source: source, StatusCode: statusCode, Body: body}
}

// IsUpstreamStatusError checks if err is an UpstreamStatusError
func IsUpstreamStatusError(err error) bool {
	var statusErr *UpstreamStatusError
	return errors.As(err, &statusErr)
}
