package middleware

import (
	"regexp"

	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

const RequestIDKey = contextPkg.LocalsKey

// Incoming ids are echoed into logs and upstream headers, so only short
// token-like values are trusted.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func NewRequestIDMiddleware() fiber.Handler {
	ids := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if !validRequestID.MatchString(requestID) {
			requestID = ids.NewRequestID()
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(fiber.HeaderXRequestID, requestID)
		c.SetUserContext(contextPkg.WithRequestID(c.UserContext(), requestID))

		return c.Next()
	}
}
