package client

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired is returned by protected calls when no token is
	// available. No request is sent in that case.
	ErrAuthRequired = errors.New("authentication required")

	// ErrUnavailable wraps transport failures that outlived the retry policy.
	ErrUnavailable = errors.New("server unavailable")

	// ErrMalformedResponse means a 2xx reply could not be decoded into the
	// expected shape.
	ErrMalformedResponse = errors.New("malformed response")

	ErrInvalidRequest = errors.New("invalid request")
)

// HTTPError is a non-2xx reply. Body holds the start of the response body
// for diagnostics.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API Error: %d", e.Status)
}

// IsStatus reports whether err carries an HTTPError with the given status.
func IsStatus(err error, status int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == status
}
