package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx backend response.
type StatusError struct {
	StatusCode int
	RequestID  string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d (request %s): %s", e.StatusCode, e.RequestID, e.Body)
}

// DecodeError is a response that arrived with a 2xx status but failed the
// schema check at the client boundary.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response shape from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}

// isConflictStatus reports whether a create was rejected because the
// sub-resource already exists. The backend signals duplicates with a
// bad-request-style code, so both 400 and 409 count.
func isConflictStatus(code int) bool {
	return code == http.StatusBadRequest || code == http.StatusConflict
}
