package shortcut

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrMissingToken is returned by New when no API token is configured.
	ErrMissingToken = errors.New("shortcut: API token is required")

	// ErrDecode marks responses whose body is not the JSON we expected.
	ErrDecode = errors.New("shortcut: malformed response body")
)

// HTTPError is returned for any non-2xx response from the Shortcut API.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

