package seriesHandler

import (
	"time"

	"DevBlogFrontend/internal/api/series"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *SeriesHandler) GetAllSeries(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	list, err := h.seriesService.GetAllSeries(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_all_series")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, series.SeriesListResponse{
			Series: list,
			Total:  len(list),
		})
	}
}

// GetSeriesBySlug shows drafts of the series only to an admin viewer.
func (h *SeriesHandler) GetSeriesBySlug(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	isAdmin, err := h.middleware.GetSession(ctx).IsAdmin(c, time.Now())
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_series")
	}

	sr, err := h.seriesService.GetSeriesBySlug(c, ctx.Params("slug"), isAdmin)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_series")
	}
	if sr == nil {
		return errHandler.Handle(ctx, requestID, series.ErrSeriesNotFound, ctx.Path(), "get_series")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, sr)
	}
}

func (h *SeriesHandler) AdminGetAllSeries(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	list, err := h.seriesService.GetAllSeriesAdmin(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "admin_get_all_series")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, series.SeriesListResponse{
			Series: list,
			Total:  len(list),
		})
	}
}

func (h *SeriesHandler) AdminGetSeriesByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sr, err := h.seriesService.GetSeriesByID(c, ctx.Params("id"), true)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "admin_get_series")
	}
	if sr == nil {
		return errHandler.Handle(ctx, requestID, series.ErrSeriesNotFound, ctx.Path(), "admin_get_series")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, sr)
	}
}

func (h *SeriesHandler) CreateSeries(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req series.CreateSeriesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	created, err := h.seriesService.CreateSeries(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_series")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, created)
	}
}

func (h *SeriesHandler) UpdateSeries(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req series.UpdateSeriesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	updated, err := h.seriesService.UpdateSeries(c, ctx.Params("id"), req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_series")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, updated)
	}
}

func (h *SeriesHandler) PublishSeries(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req series.PublishSeriesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	updated, err := h.seriesService.TogglePublish(c, ctx.Params("id"), *req.Published)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "publish_series")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, updated)
	}
}

func (h *SeriesHandler) DeleteSeries(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	if err := h.seriesService.DeleteSeries(c, ctx.Params("id")); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_series")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Series deleted successfully",
		})
	}
}
