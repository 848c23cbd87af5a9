package seriesHandler

import (
	seriesService "DevBlogFrontend/internal/api/series/service"
	"DevBlogFrontend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SeriesHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	seriesService seriesService.ISeriesService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss seriesService.ISeriesService,
) *SeriesHandler {
	return &SeriesHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		seriesService: ss,
	}
}

func (h *SeriesHandler) Start(srv fiber.Router) {
	srv.Get("/series", h.GetAllSeries)
	srv.Get("/series/:slug", h.GetSeriesBySlug)

	admin := srv.Group("/admin")
	admin.Get("/series", h.middleware.NewAdminGuard, h.AdminGetAllSeries)
	admin.Post("/series", h.middleware.NewAdminGuard, h.CreateSeries)
	admin.Get("/series/:id", h.middleware.NewAdminGuard, h.AdminGetSeriesByID)
	admin.Put("/series/:id", h.middleware.NewAdminGuard, h.UpdateSeries)
	admin.Delete("/series/:id", h.middleware.NewAdminGuard, h.DeleteSeries)
	admin.Patch("/series/:id/publish", h.middleware.NewAdminGuard, h.PublishSeries)
}
