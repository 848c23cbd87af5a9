package blogRepository

import (
	blogs "DevBlogFrontend/internal/api/blog"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// LookupKind selects which endpoint resolves a single blog.
type LookupKind uint8

const (
	// BySlug is the public detail endpoint.
	BySlug LookupKind = iota
	// ByID is the authenticated "your blogs" endpoint.
	ByID
)

type Repository interface {
	CreateBlog(ctx context.Context, req blogs.CreateBlogRequest) (entity.Blog, error)
	UpdateBlog(ctx context.Context, id string, req blogs.UpdateBlogRequest) (entity.Blog, error)
	GetYourBlogs(ctx context.Context, seriesID string) ([]entity.Blog, error)
	GetAllBlogs(ctx context.Context, seriesID string) ([]entity.Blog, error)
	GetBlog(ctx context.Context, idOrSlug string, kind LookupKind) (entity.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
	LikeBlog(ctx context.Context, id string) (entity.Blog, error)
}

type repository struct {
	api *client.Client
	log *logrus.Logger
}

func New(api *client.Client, log *logrus.Logger) Repository {
	return &repository{
		api: api,
		log: log,
	}
}
