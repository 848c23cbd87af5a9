package seriesService

import (
	"DevBlogFrontend/internal/api/series"
	blogService "DevBlogFrontend/internal/api/blog/service"
	seriesRepository "DevBlogFrontend/internal/api/series/repository"
	"DevBlogFrontend/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ISeriesService interface {
	GetAllSeries(ctx context.Context) ([]entity.Series, error)
	GetAllSeriesAdmin(ctx context.Context) ([]entity.Series, error)
	GetSeriesBySlug(ctx context.Context, slug string, isAdmin bool) (*entity.Series, error)
	GetSeriesByID(ctx context.Context, id string, isAdmin bool) (*entity.Series, error)
	CreateSeries(ctx context.Context, req series.CreateSeriesRequest) (*entity.Series, error)
	UpdateSeries(ctx context.Context, id string, req series.UpdateSeriesRequest) (*entity.Series, error)
	TogglePublish(ctx context.Context, id string, published bool) (*entity.Series, error)
	DeleteSeries(ctx context.Context, id string) error
}

type seriesService struct {
	log         *logrus.Logger
	seriesRepo  seriesRepository.Repository
	blogService blogService.IBlogService
	validator   *validator.Validate
}

func NewSeriesService(
	log *logrus.Logger,
	seriesRepo seriesRepository.Repository,
	blogService blogService.IBlogService,
	validate *validator.Validate,
) ISeriesService {
	return &seriesService{
		log:         log,
		seriesRepo:  seriesRepo,
		blogService: blogService,
		validator:   validate,
	}
}
