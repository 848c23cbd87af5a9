package middleware

import (
	"DevBlogFrontend/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// NewAdminGuard lets the request through only for an authenticated admin
// session and sends everyone else to the login page.
func (m *middleware) NewAdminGuard(c *fiber.Ctx) error {
	sess := m.GetSession(c)

	state, err := sess.State(c.UserContext())
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(c),
			"error":      err.Error(),
		}).Error("Failed to read session state")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "An unexpected error occurred",
		})
	}

	if state.Authenticated(m.now()) && state.IsAdmin() {
		return c.Next()
	}

	m.log.WithFields(logrus.Fields{
		"request_id":    m.GetRequestID(c),
		"path":          c.Path(),
		"authenticated": state.Authenticated(m.now()),
	}).Warn("Admin area requires login")

	c.Location(session.LoginPath)
	return c.Status(fiber.StatusFound).JSON(fiber.Map{
		"error":    "Unauthorized",
		"code":     "UNAUTHORIZED",
		"redirect": session.LoginPath,
	})
}
