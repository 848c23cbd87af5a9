package blogHandler

import (
	"time"

	blogs "DevBlogFrontend/internal/api/blog"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *BlogHandler) SavePreview(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req blogs.PreviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	draft, err := h.blogService.SavePreview(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "save_preview")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, draft)
	}
}

func (h *BlogHandler) LoadPreview(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	draft, err := h.blogService.LoadPreview(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "load_preview")
	}
	if draft == nil {
		return errHandler.Handle(ctx, requestID, blogs.ErrPreviewNotFound, ctx.Path(), "load_preview")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, draft)
	}
}

func (h *BlogHandler) RenderPreview(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	rendered, err := h.blogService.RenderPreview(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "render_preview")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, rendered)
	}
}
