package context

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// LocalsKey is where the request id middleware leaves the id on a fiber
// request.
const LocalsKey = "X-Request-ID"

const unknownRequestID = "unknown"

type requestIDKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID returns "unknown" when ctx carries no id.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return unknownRequestID
	}
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		return requestID
	}
	return unknownRequestID
}

// FromFiberCtx derives the service context of a gateway request from its
// UserContext, so the browser session travels along, and tags it with the
// request id.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	requestID, _ := c.Locals(LocalsKey).(string)
	if requestID == "" {
		requestID = c.Get(fiber.HeaderXRequestID)
	}
	return WithRequestID(c.UserContext(), requestID)
}
