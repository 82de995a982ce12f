package errors

import (
	"errors"
	"net/http"
)

// Exception is a taxonomy value: a stable message plus the HTTP status the
// API layer answers with. Adapter-internal errors are translated into these
// values at the repository boundary and never cross it raw.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
