package blogHandler

import (
	"errors"
	"strings"
	"time"

	blogs "DevBlogFrontend/internal/api/blog"
	"DevBlogFrontend/internal/entity"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/handlerUtil"
	"DevBlogFrontend/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

// GetAllBlogs is the home feed. An admin viewer also sees drafts; ?q=
// searches, ?series= narrows to one series.
func (h *BlogHandler) GetAllBlogs(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	isAdmin, err := h.middleware.GetSession(ctx).IsAdmin(c, time.Now())
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_all_blogs")
	}

	var list []entity.Blog
	if query := strings.TrimSpace(ctx.Query("q")); query != "" {
		list, err = h.blogService.SearchBlogs(c, query, isAdmin)
	} else {
		list, err = h.blogService.GetAllBlogs(c, isAdmin, ctx.Query("series"))
	}
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_all_blogs")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, blogs.BlogListResponse{
			Blogs: list,
			Total: len(list),
		})
	}
}

// GetBlogBySlug returns the article and its comments. The visitor id is
// settled first so the view is attributed.
func (h *BlogHandler) GetBlogBySlug(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	slug := ctx.Params("slug")
	if slug == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("slug is required"), ctx.Path())
	}

	h.visitorService.EnsureVisitorID(c)

	blog, err := h.blogService.GetBlogBySlug(c, slug)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_blog")
	}
	if blog == nil {
		return errHandler.Handle(ctx, requestID, blogs.ErrBlogNotFound, ctx.Path(), "get_blog")
	}

	comments, err := h.commentService.GetCommentsByBlogID(c, blog.ID)
	if err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"blog_id":    blog.ID,
			"error":      err.Error(),
		}).Warn("Serving blog without comments")
		comments = []entity.Comment{}
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, blogs.BlogDetailResponse{
			Blog:     *blog,
			Comments: comments,
		})
	}
}

func (h *BlogHandler) LikeBlog(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("blog ID is required"), ctx.Path())
	}

	h.visitorService.EnsureVisitorID(c)

	blog, err := h.blogService.IncrementLikes(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "like_blog")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, blog)
	}
}

func (h *BlogHandler) AdminGetAllBlogs(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	list, err := h.blogService.GetAllBlogs(c, true, ctx.Query("series"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "admin_get_all_blogs")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, blogs.BlogListResponse{
			Blogs: list,
			Total: len(list),
		})
	}
}

func (h *BlogHandler) AdminGetBlogByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	blog, err := h.blogService.GetBlogByID(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "admin_get_blog")
	}
	if blog == nil {
		return errHandler.Handle(ctx, requestID, blogs.ErrBlogNotFound, ctx.Path(), "admin_get_blog")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, blog)
	}
}

func (h *BlogHandler) CreateBlog(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create blog request")

	form, err := ctx.MultipartForm()
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("multipart form required"), ctx.Path())
	}
	values := formValues(form.Value)

	published, err := values.boolean("published")
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	thumb, err := thumbnail(form, values)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_blog")
	}

	req := blogs.CreateBlogRequest{Thumbnail: thumb}
	req.Title, _ = values.get("title")
	req.Slug, _ = values.get("slug")
	req.Content, _ = values.get("content")
	req.SeriesID, _ = values.get("series_id")
	req.Tags, _ = values.tags()
	if published != nil {
		req.Published = *published
	}

	blog, err := h.blogService.CreateBlog(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_blog")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, blog)
	}
}

// UpdateBlog forwards only the form fields present in the request.
func (h *BlogHandler) UpdateBlog(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")

	form, err := ctx.MultipartForm()
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("multipart form required"), ctx.Path())
	}
	values := formValues(form.Value)

	req := blogs.UpdateBlogRequest{}
	if v, ok := values.get("title"); ok {
		req.Title = &v
	}
	if v, ok := values.get("slug"); ok {
		req.Slug = &v
	}
	if v, ok := values.get("content"); ok {
		req.Content = &v
	}
	if v, ok := values.get("series_id"); ok {
		req.SeriesID = &v
	}
	if tags, ok := values.tags(); ok {
		req.Tags = tags
	}
	if req.Published, err = values.boolean("published"); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if req.Thumbnail, err = thumbnail(form, values); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_blog")
	}

	blog, err := h.blogService.UpdateBlog(c, id, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_blog")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, blog)
	}
}

func (h *BlogHandler) DeleteBlog(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	if err := h.blogService.DeleteBlog(c, ctx.Params("id")); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_blog")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Blog deleted successfully",
		})
	}
}

// TogglePublish flips the published flag, or sets it when the body names
// a value.
func (h *BlogHandler) TogglePublish(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req blogs.TogglePublishRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}
	}

	var (
		blog *entity.Blog
		err  error
	)
	if req.Published != nil {
		blog, err = h.blogService.SetPublished(c, ctx.Params("id"), *req.Published)
	} else {
		blog, err = h.blogService.TogglePublish(c, ctx.Params("id"))
	}
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "toggle_publish")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, blog)
	}
}
