package handlerUtil

import (
	"errors"
	"net/http"

	"DevBlogFrontend/pkg/log"
	"DevBlogFrontend/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

// SessionLocalsKey is where the session middleware keeps the request's
// session in fiber Locals.
const SessionLocalsKey = "browser_session"

// Redirector is a session that may have been torn down during the request.
type Redirector interface {
	Redirected() (string, bool)
}

// UpstreamError is returned by the API client for non-2xx backend replies.
type UpstreamError interface {
	error
	UpstreamStatus() int
}

type ErrorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	if to, ok := redirectOf(c); ok {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
			"redirect":   to,
		}).Warn("Session torn down, redirecting")
		return h.HandleRedirect(c, to)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return h.HandleValidationError(c, requestID, err, path)
	}

	// The backend failing is not the caller's fault.
	var upstream UpstreamError
	if errors.As(err, &upstream) && upstream.UpstreamStatus() >= http.StatusInternalServerError {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"status":     upstream.UpstreamStatus(),
			"path":       path,
			"operation":  operation,
		}).Error("Upstream API failed")
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: "Upstream service unavailable",
			Code:  "UPSTREAM_ERROR",
		})
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": respErr.Error()})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func redirectOf(c *fiber.Ctx) (string, bool) {
	r, ok := c.Locals(SessionLocalsKey).(Redirector)
	if !ok {
		return "", false
	}
	return r.Redirected()
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

// HandleRedirect answers with 302 and the target in both the Location
// header and the body, so API callers and browsers can follow it.
func (h *ErrorHandler) HandleRedirect(c *fiber.Ctx, to string) error {
	c.Location(to)
	return c.Status(fiber.StatusFound).JSON(ErrorResponse{
		Error:    "Session expired, please log in again",
		Code:     "UNAUTHORIZED",
		Redirect: to,
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
