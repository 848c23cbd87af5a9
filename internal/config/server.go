package config

import (
	"fmt"

	authHandler "DevBlogFrontend/internal/api/auth/handler"
	authRepository "DevBlogFrontend/internal/api/auth/repository"
	authService "DevBlogFrontend/internal/api/auth/service"
	blogHandler "DevBlogFrontend/internal/api/blog/handler"
	blogRepository "DevBlogFrontend/internal/api/blog/repository"
	blogService "DevBlogFrontend/internal/api/blog/service"
	commentHandler "DevBlogFrontend/internal/api/comment/handler"
	commentRepository "DevBlogFrontend/internal/api/comment/repository"
	commentService "DevBlogFrontend/internal/api/comment/service"
	seriesHandler "DevBlogFrontend/internal/api/series/handler"
	seriesRepository "DevBlogFrontend/internal/api/series/repository"
	seriesService "DevBlogFrontend/internal/api/series/service"
	visitorHandler "DevBlogFrontend/internal/api/visitor/handler"
	visitorRepository "DevBlogFrontend/internal/api/visitor/repository"
	visitorService "DevBlogFrontend/internal/api/visitor/service"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/middleware"
	"DevBlogFrontend/pkg/events"
	"DevBlogFrontend/pkg/metrics"
	"DevBlogFrontend/pkg/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type ServerOption func(*Server) error

type Server struct {
	engine     *fiber.App
	log        *logrus.Logger
	env        Env
	middleware middleware.Middleware
	validator  *validator.Validate
	storage    storage.Provider
	api        *client.Client
	events     *events.Broker[events.AuthEvent]
	metrics    *metrics.Metrics
	handlers   []handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.api == nil {
		return nil, fmt.Errorf("api client is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log, server.middlewareConfig())
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithEnv(env Env) ServerOption {
	return func(s *Server) error {
		s.env = env
		return nil
	}
}

// WithStorage sets where browser sessions keep their tokens. It must come
// before WithMiddleware to take effect.
func WithStorage(provider storage.Provider) ServerOption {
	return func(s *Server) error {
		s.storage = provider
		return nil
	}
}

func WithAPIClient(api *client.Client) ServerOption {
	return func(s *Server) error {
		s.api = api
		return nil
	}
}

func WithEvents(broker *events.Broker[events.AuthEvent]) ServerOption {
	return func(s *Server) error {
		s.events = broker
		return nil
	}
}

func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) error {
		s.metrics = m
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.middlewareConfig())
		return nil
	}
}

func (s *Server) middlewareConfig() middleware.Config {
	return middleware.Config{
		RateLimit:    rate.Limit(s.env.RateLimit),
		RateBurst:    s.env.RateBurst,
		CookieName:   s.env.SessionCookie,
		CookieTTL:    s.env.SessionTTL,
		CookieSecure: s.env.CookieSecure,
		Storage:      s.storage,
		Events:       s.events,
	}
}

func (s *Server) RegisterHandler() {
	// Visitor
	visitorRepo := visitorRepository.New(s.api, s.log)
	visitorServices := visitorService.NewVisitorService(s.log, visitorRepo)
	visitorHandlers := visitorHandler.New(s.log, s.middleware, visitorServices)

	// Auth Domain
	authRepo := authRepository.New(s.api, s.log)
	authServices := authService.New(s.log, authRepo, s.validator)
	authHandlers := authHandler.New(s.log, s.validator, s.middleware, authServices)

	// Comments
	commentRepo := commentRepository.New(s.api, s.log)
	commentServices := commentService.NewCommentService(s.log, commentRepo, s.validator)
	commentHandlers := commentHandler.New(s.log, s.validator, s.middleware, commentServices, visitorServices)

	// Blogs
	blogRepo := blogRepository.New(s.api, s.log)
	blogServices := blogService.NewBlogService(s.log, blogRepo, s.validator)
	blogHandlers := blogHandler.New(s.log, s.validator, s.middleware, blogServices, commentServices, visitorServices)

	// Series
	seriesRepo := seriesRepository.New(s.api, s.log)
	seriesServices := seriesService.NewSeriesService(s.log, seriesRepo, blogServices, s.validator)
	seriesHandlers := seriesHandler.New(s.log, s.validator, s.middleware, seriesServices)

	s.setupHealthCheck()
	s.setupMetrics()
	s.handlers = append(s.handlers, visitorHandlers, authHandlers, commentHandlers, blogHandlers, seriesHandlers)
}

// Mount installs the middleware chain and every registered handler on the
// engine without listening.
func (s *Server) Mount() {
	s.engine.Use(recover.New())
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware)
	s.engine.Use(s.middleware.NewRateLimiter)
	s.engine.Use(s.middleware.NewSessionMiddleware)

	for _, h := range s.handlers {
		h.Start(s.engine)
	}
}

func (s *Server) Run() error {
	s.Mount()

	port := s.env.AppPort
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	if s.events != nil {
		s.events.Close()
	}
	return s.engine.Shutdown()
}

func (s *Server) App() *fiber.App {
	return s.engine
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

func (s *Server) setupMetrics() {
	if s.metrics == nil {
		return
	}
	s.engine.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
}
