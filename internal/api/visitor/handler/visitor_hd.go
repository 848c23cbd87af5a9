package visitorHandler

import (
	"time"

	"DevBlogFrontend/internal/api/visitor"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *VisitorHandler) GetVisitorID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := h.visitorService.GetVisitorID(c)
	if id == "" {
		return errHandler.Handle(ctx, requestID, visitor.ErrVisitorUnavailable, ctx.Path(), "get_visitor_id")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, visitor.VisitorResponse{VisitorID: id})
	}
}
