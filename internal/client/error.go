package client

import (
	"errors"
	"fmt"
	"net/http"

	"DevBlogFrontend/pkg/response"

	jsoniter "github.com/json-iterator/go"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) UpstreamStatus() int {
	return e.Status
}

// Unwrap exposes the status as a *response.Error so callers classify with
// response.StatusOf and friends.
func (e *APIError) Unwrap() error {
	return &response.Error{Code: e.Status, Err: errors.New(e.Message)}
}

type errorBody struct {
	Message string      `json:"message"`
	Error   string      `json:"error"`
	Detail  interface{} `json:"detail"`
}

func newAPIError(status int, raw []byte) *APIError {
	e := &APIError{Status: status, Body: raw}

	var body errorBody
	if err := jsoniter.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Message != "":
			e.Message = body.Message
		case body.Error != "":
			e.Message = body.Error
		case body.Detail != nil:
			if s, ok := body.Detail.(string); ok {
				e.Message = s
			}
		}
	}

	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
