package middleware

import (
	"time"

	"DevBlogFrontend/internal/session"
	"DevBlogFrontend/pkg/events"
	"DevBlogFrontend/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware(ctx *fiber.Ctx) error
	NewSessionMiddleware(ctx *fiber.Ctx) error
	NewAdminGuard(ctx *fiber.Ctx) error
	GetRequestID(ctx *fiber.Ctx) string
	GetSession(ctx *fiber.Ctx) *session.Session
}

// Config tunes the gateway middleware. Zero values fall back to the
// defaults below.
type Config struct {
	RateLimit    rate.Limit
	RateBurst    int
	CookieName   string
	CookieTTL    time.Duration
	CookieSecure bool
	Storage      storage.Provider
	Events       *events.Broker[events.AuthEvent]
}

const (
	defaultRateLimit  = 50
	defaultRateBurst  = 100
	defaultCookieName = "devblog_browser"
	defaultCookieTTL  = 30 * 24 * time.Hour
)

type middleware struct {
	rateLimitter        *rateLimiter
	browserSessions     *browserSessions
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
	now                 func() time.Time
}

func New(logger *logrus.Logger, cfg Config) Middleware {
	if cfg.RateLimit == 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = defaultRateBurst
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.CookieTTL == 0 {
		cfg.CookieTTL = defaultCookieTTL
	}
	if cfg.Storage == nil {
		cfg.Storage = storage.NewMemoryProvider()
	}

	return &middleware{
		rateLimitter:        newRateLimiter(cfg.RateLimit, cfg.RateBurst),
		browserSessions:     newBrowserSessions(cfg),
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
		now:                 time.Now,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}
