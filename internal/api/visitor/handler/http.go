package visitorHandler

import (
	visitorService "DevBlogFrontend/internal/api/visitor/service"
	"DevBlogFrontend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type VisitorHandler struct {
	log            *logrus.Logger
	middleware     middleware.Middleware
	visitorService visitorService.IVisitorService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	vs visitorService.IVisitorService,
) *VisitorHandler {
	return &VisitorHandler{
		log:            log,
		middleware:     middleware,
		visitorService: vs,
	}
}

func (h *VisitorHandler) Start(srv fiber.Router) {
	srv.Get("/visitor", h.GetVisitorID)
}
