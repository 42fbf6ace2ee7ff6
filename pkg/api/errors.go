package api

import (
	"errors"
	"fmt"
)

// NetworkError means the request never produced an HTTP response
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError means the service answered with a non-2xx status
type ServerError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: server returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the service
func IsNotFound(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.StatusCode == 404
}

// IsRequestError reports whether err came from talking to the service, as opposed to
// local validation. Transport failures and non-2xx answers are treated the same.
func IsRequestError(err error) bool {
	var ne *NetworkError
	var se *ServerError
	return errors.As(err, &ne) || errors.As(err, &se)
}
