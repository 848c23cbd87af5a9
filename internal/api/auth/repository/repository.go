package authRepository

import (
	"DevBlogFrontend/internal/api/auth"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type Repository interface {
	Login(ctx context.Context, req auth.LoginRequest) (entity.Session, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
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
