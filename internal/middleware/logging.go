package middleware

import (
	"strings"
	"time"

	"DevBlogFrontend/pkg/log"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

func (m *middleware) NewLoggingMiddleware(c *fiber.Ctx) error {
	start := time.Now()

	requestID := m.GetRequestID(c)
	c.Locals("request_id", requestID)

	err := c.Next()

	latency := time.Since(start)
	status := c.Response().StatusCode()

	if err != nil && status == fiber.StatusInternalServerError {
		return err
	}

	logFields := log.Fields{
		"request_id":    requestID,
		"method":        c.Method(),
		"path":          c.Path(),
		"status":        status,
		"latency_ms":    latency.Milliseconds(),
		"ip":            c.IP(),
		"user_agent":    c.Get("User-Agent"),
		"response_size": len(c.Response().Body()),
	}

	if body := c.Request().Body(); len(body) > 0 &&
		strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		logFields["request_body"] = sanitizeRequestBody(c.Path(), body)
	}

	entry := m.log.WithFields(logFields)
	switch {
	case status >= 500:
		entry.Error("Server error")
	case status >= 400:
		entry.Warn("Client error")
	default:
		entry.Info("Success")
	}

	return err
}

func sanitizeRequestBody(path string, body []byte) string {
	var jsonBody map[string]interface{}
	if err := jsoniter.Unmarshal(body, &jsonBody); err != nil {
		return "[non-JSON body]"
	}

	sensitiveFields := []string{
		"password", "token", "secret", "key", "auth",
		"credential", "authorization", "access_token", "refresh_token",
	}

	if strings.Contains(path, "/login") || strings.Contains(path, "/password") {
		sensitiveFields = append(sensitiveFields,
			"current_password", "new_password", "confirm_password",
			"currentPassword", "newPassword", "confirmPassword")
	}

	for _, field := range sensitiveFields {
		if _, exists := jsonBody[field]; exists {
			jsonBody[field] = "[SECRET]"
		}
	}

	sanitized, err := jsoniter.Marshal(jsonBody)
	if err != nil {
		return "[sanitization-failed]"
	}

	return string(sanitized)
}
