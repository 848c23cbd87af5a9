package blogHandler

import (
	blogService "DevBlogFrontend/internal/api/blog/service"
	commentService "DevBlogFrontend/internal/api/comment/service"
	visitorService "DevBlogFrontend/internal/api/visitor/service"
	"DevBlogFrontend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BlogHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	blogService    blogService.IBlogService
	commentService commentService.ICommentService
	visitorService visitorService.IVisitorService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	bs blogService.IBlogService,
	cs commentService.ICommentService,
	vs visitorService.IVisitorService,
) *BlogHandler {
	return &BlogHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		blogService:    bs,
		commentService: cs,
		visitorService: vs,
	}
}

func (h *BlogHandler) Start(srv fiber.Router) {
	// Public views
	srv.Get("/", h.GetAllBlogs)
	blog := srv.Group("/blog")
	blog.Get("/:slug", h.GetBlogBySlug)
	blog.Post("/:id/like", h.LikeBlog)

	// Admin area
	admin := srv.Group("/admin")
	admin.Get("/blogs", h.middleware.NewAdminGuard, h.AdminGetAllBlogs)
	admin.Post("/blogs", h.middleware.NewAdminGuard, h.CreateBlog)
	admin.Get("/blogs/:id", h.middleware.NewAdminGuard, h.AdminGetBlogByID)
	admin.Put("/blogs/:id", h.middleware.NewAdminGuard, h.UpdateBlog)
	admin.Delete("/blogs/:id", h.middleware.NewAdminGuard, h.DeleteBlog)
	admin.Patch("/blogs/:id/publish", h.middleware.NewAdminGuard, h.TogglePublish)

	admin.Post("/preview", h.middleware.NewAdminGuard, h.SavePreview)
	admin.Get("/preview", h.middleware.NewAdminGuard, h.LoadPreview)
	admin.Get("/preview/render", h.middleware.NewAdminGuard, h.RenderPreview)
}
