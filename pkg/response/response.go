package response

import (
	"errors"
	"net/http"
)

type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}

// StatusOf reports the HTTP status carried by err, or 0 when err is not a
// *Error anywhere in its chain.
func StatusOf(err error) int {
	var respErr *Error
	if errors.As(err, &respErr) {
		return respErr.Code
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}
