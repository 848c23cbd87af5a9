package blogService

import (
	blogs "DevBlogFrontend/internal/api/blog"
	blogRepository "DevBlogFrontend/internal/api/blog/repository"
	"DevBlogFrontend/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IBlogService interface {
	GetAllBlogs(ctx context.Context, isAdmin bool, seriesID string) ([]entity.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*entity.Blog, error)
	GetBlogByID(ctx context.Context, id string) (*entity.Blog, error)
	CreateBlog(ctx context.Context, req blogs.CreateBlogRequest) (*entity.Blog, error)
	UpdateBlog(ctx context.Context, id string, req blogs.UpdateBlogRequest) (*entity.Blog, error)
	SetPublished(ctx context.Context, id string, published bool) (*entity.Blog, error)
	TogglePublish(ctx context.Context, id string) (*entity.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) (*entity.Blog, error)
	GetBlogsBySeries(ctx context.Context, seriesID string, isAdmin bool) ([]entity.Blog, error)
	SearchBlogs(ctx context.Context, query string, isAdmin bool) ([]entity.Blog, error)

	SavePreview(ctx context.Context, req blogs.PreviewRequest) (entity.BlogDraft, error)
	LoadPreview(ctx context.Context) (*entity.BlogDraft, error)
	RenderPreview(ctx context.Context) (*blogs.PreviewResponse, error)
}

type blogService struct {
	log       *logrus.Logger
	blogRepo  blogRepository.Repository
	validator *validator.Validate
}

func NewBlogService(
	log *logrus.Logger,
	blogRepo blogRepository.Repository,
	validate *validator.Validate,
) IBlogService {
	return &blogService{
		log:       log,
		blogRepo:  blogRepo,
		validator: validate,
	}
}
