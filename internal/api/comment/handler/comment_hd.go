package commentHandler

import (
	"time"

	comments "DevBlogFrontend/internal/api/comment"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *CommentHandler) GetComments(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	list, err := h.commentService.GetCommentsByBlogID(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_comments")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, comments.CommentListResponse{
			Comments: list,
			Total:    len(list),
		})
	}
}

func (h *CommentHandler) AddComment(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req comments.CreateCommentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.visitorService.EnsureVisitorID(c)

	created, err := h.commentService.AddComment(c, ctx.Params("id"), req.Name, req.Comment)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "add_comment")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, created)
	}
}
