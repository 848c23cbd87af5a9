package handlerUtil

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"DevBlogFrontend/pkg/log"
	"DevBlogFrontend/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type tornDown struct{ to string }

func (r tornDown) Redirected() (string, bool) { return r.to, r.to != "" }

type backendError struct{ status int }

func (e *backendError) Error() string { return "backend said no" }
func (e *backendError) UpstreamStatus() int { return e.status }
func (e *backendError) Unwrap() error {
	return &response.Error{Code: e.status, Err: errors.New("backend said no")}
}

func serve(t *testing.T, redirect string, err error) (*http.Response, string) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(SessionLocalsKey, tornDown{to: redirect})
		return New(log.NewDiscard()).Handle(c, "req-1", err, c.Path(), "test")
	})

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	if testErr != nil {
		t.Fatal(testErr)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(raw)
}

func TestHandleMapsErrors(t *testing.T) {
	type payload struct {
		Title string `validate:"required"`
	}
	validationErr := validator.New().Struct(payload{})

	tests := []struct {
		name     string
		redirect string
		err      error
		status   int
		body     string
	}{
		{"torn down session wins", "/login", &backendError{status: http.StatusUnauthorized}, http.StatusFound, `"redirect":"/login"`},
		{"validation", "", validationErr, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"upstream 5xx", "", &backendError{status: http.StatusServiceUnavailable}, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"upstream 4xx keeps status", "", &backendError{status: http.StatusNotFound}, http.StatusNotFound, "backend said no"},
		{"response error", "", response.NewError(http.StatusConflict, "taken"), http.StatusConflict, "taken"},
		{"anything else", "", errors.New("boom"), http.StatusInternalServerError, "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := serve(t, tt.redirect, tt.err)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			if !strings.Contains(body, tt.body) {
				t.Errorf("body = %s, want it to contain %q", body, tt.body)
			}
		})
	}
}

func TestHandleRedirectSetsLocation(t *testing.T) {
	resp, _ := serve(t, "/login", errors.New("unauthorized"))
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}
