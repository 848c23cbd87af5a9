package authHandler

import (
	"time"

	"DevBlogFrontend/internal/api/auth"
	"DevBlogFrontend/internal/session"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req auth.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	state, err := h.authService.Login(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "login")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, sessionResponse(state.Authenticated(time.Now()), state.User, state.ExpiresAt))
	}
}

func (h *AuthHandler) Logout(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	if err := h.authService.Logout(c); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "logout")
	}

	to, ok := h.middleware.GetSession(ctx).Redirected()
	if !ok {
		to = session.HomePath
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message":  "Logged out",
			"redirect": to,
		})
	}
}

func (h *AuthHandler) GetSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	state, err := h.authService.GetSession(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_session")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, sessionResponse(h.authService.IsAuthenticated(c), state.User, state.ExpiresAt))
	}
}

func (h *AuthHandler) ChangePassword(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req auth.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.authService.ChangePassword(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "change_password")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Password changed successfully",
		})
	}
}
