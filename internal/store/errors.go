package store

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when the store answers 404 for a document.
var ErrNotFound = errors.New("store: not found")

// StatusError is a non-2xx answer other than 404.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store: %s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

// IsStatus reports whether err is a StatusError carrying code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
