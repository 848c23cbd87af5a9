package seriesRepository

import (
	"DevBlogFrontend/internal/api/series"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type Repository interface {
	GetAllSeries(ctx context.Context) ([]entity.Series, error)
	GetYourSeries(ctx context.Context) ([]entity.Series, error)
	GetSeries(ctx context.Context, idOrSlug string) (entity.Series, error)
	CreateSeries(ctx context.Context, req series.CreateSeriesRequest) (entity.Series, error)
	UpdateSeries(ctx context.Context, id string, req series.UpdateSeriesRequest) (entity.Series, error)
	DeleteSeries(ctx context.Context, id string) error
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
