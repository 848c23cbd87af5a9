package commentHandler

import (
	commentService "DevBlogFrontend/internal/api/comment/service"
	visitorService "DevBlogFrontend/internal/api/visitor/service"
	"DevBlogFrontend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	commentService commentService.ICommentService
	visitorService visitorService.IVisitorService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs commentService.ICommentService,
	vs visitorService.IVisitorService,
) *CommentHandler {
	return &CommentHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		commentService: cs,
		visitorService: vs,
	}
}

func (h *CommentHandler) Start(srv fiber.Router) {
	blog := srv.Group("/blog")
	blog.Get("/:id/comments", h.GetComments)
	blog.Post("/:id/comments", h.AddComment)
}
