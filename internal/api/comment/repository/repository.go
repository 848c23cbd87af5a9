package commentRepository

import (
	comments "DevBlogFrontend/internal/api/comment"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type Repository interface {
	ListComments(ctx context.Context, blogID string, limit int) ([]entity.Comment, int, error)
	CreateComment(ctx context.Context, blogID string, req comments.CreateCommentRequest) (entity.Comment, error)
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
