package authHandler

import (
	authService "DevBlogFrontend/internal/api/auth/service"
	"DevBlogFrontend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	authService authService.IAuthService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as authService.IAuthService,
) *AuthHandler {
	return &AuthHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		authService: as,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	srv.Post("/login", h.Login)
	srv.Post("/logout", h.Logout)
	srv.Get("/session", h.GetSession)

	admin := srv.Group("/admin")
	admin.Post("/password", h.middleware.NewAdminGuard, h.ChangePassword)
}
