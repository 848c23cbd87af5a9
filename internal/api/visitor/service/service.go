package visitorService

import (
	visitorRepository "DevBlogFrontend/internal/api/visitor/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"golang.org/x/sync/singleflight"
)

type IVisitorService interface {
	GetVisitorID(ctx context.Context) string
	EnsureVisitorID(ctx context.Context)
	GetStoredVisitorID(ctx context.Context) string
}

type visitorService struct {
	log         *logrus.Logger
	visitorRepo visitorRepository.Repository
	mint        singleflight.Group
}

func NewVisitorService(
	log *logrus.Logger,
	visitorRepo visitorRepository.Repository,
) IVisitorService {
	return &visitorService{
		log:         log,
		visitorRepo: visitorRepo,
	}
}
