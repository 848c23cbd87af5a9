package authService

import (
	"time"

	"DevBlogFrontend/internal/api/auth"
	authRepository "DevBlogFrontend/internal/api/auth/repository"
	"DevBlogFrontend/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAuthService interface {
	Login(ctx context.Context, req auth.LoginRequest) (*entity.Session, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	GetCurrentUser(ctx context.Context) *entity.User
	IsAdmin(ctx context.Context) bool
	GetSession(ctx context.Context) (entity.Session, error)
	ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error
}

type authService struct {
	log       *logrus.Logger
	authRepo  authRepository.Repository
	validator *validator.Validate
	now       func() time.Time
}

func New(
	log *logrus.Logger,
	authRepo authRepository.Repository,
	validate *validator.Validate,
) IAuthService {
	return &authService{
		log:       log,
		authRepo:  authRepo,
		validator: validate,
		now:       time.Now,
	}
}
