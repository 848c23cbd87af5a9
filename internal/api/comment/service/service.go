package commentService

import (
	commentRepository "DevBlogFrontend/internal/api/comment/repository"
	"DevBlogFrontend/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ICommentService interface {
	GetCommentsByBlogID(ctx context.Context, blogID string) ([]entity.Comment, error)
	AddComment(ctx context.Context, blogID, name, text string) (*entity.Comment, error)
	CountComments(ctx context.Context, blogID string) (int, error)
}

type commentService struct {
	log         *logrus.Logger
	commentRepo commentRepository.Repository
	validator   *validator.Validate
}

func NewCommentService(
	log *logrus.Logger,
	commentRepo commentRepository.Repository,
	validate *validator.Validate,
) ICommentService {
	return &commentService{
		log:         log,
		commentRepo: commentRepo,
		validator:   validate,
	}
}
