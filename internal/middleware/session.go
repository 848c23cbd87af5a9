package middleware

import (
	"time"

	"DevBlogFrontend/internal/session"
	"DevBlogFrontend/pkg/events"
	"DevBlogFrontend/pkg/handlerUtil"
	"DevBlogFrontend/pkg/storage"
	"DevBlogFrontend/pkg/utils"

	"github.com/gofiber/fiber/v2"
	fiberUtils "github.com/gofiber/fiber/v2/utils"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

type browserSessions struct {
	cookieName string
	ttl        time.Duration
	secure     bool
	provider   storage.Provider
	events     *events.Broker[events.AuthEvent]
	ids        utils.IUtils
}

func newBrowserSessions(cfg Config) *browserSessions {
	return &browserSessions{
		cookieName: cfg.CookieName,
		ttl:        cfg.CookieTTL,
		secure:     cfg.CookieSecure,
		provider:   cfg.Storage,
		events:     cfg.Events,
		ids:        utils.New(),
	}
}

// NewSessionMiddleware maps the browser cookie to a storage scope and puts
// the session on the request's user context. The current location is the
// request path. The cookie value outlives the request as a storage scope,
// so it is copied out of fasthttp's pooled buffer.
func (m *middleware) NewSessionMiddleware(c *fiber.Ctx) error {
	b := m.browserSessions

	browserID := fiberUtils.CopyString(c.Cookies(b.cookieName))
	if _, err := ulid.ParseStrict(browserID); err != nil {
		browserID = b.ids.NewRequestID()

		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(c),
			"browser_id": browserID,
		}).Debug("Issued browser id")
	}

	c.Cookie(&fiber.Cookie{
		Name:     b.cookieName,
		Value:    browserID,
		Path:     "/",
		Expires:  m.now().Add(b.ttl),
		HTTPOnly: true,
		Secure:   b.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	opts := []session.Option{}
	if b.events != nil {
		opts = append(opts, session.WithEvents(b.events))
	}
	sess := session.New(browserID, b.provider.Open(browserID), fiberUtils.CopyString(c.Path()), opts...)

	c.Locals(handlerUtil.SessionLocalsKey, sess)
	c.SetUserContext(session.With(c.UserContext(), sess))

	return c.Next()
}

func (m *middleware) GetSession(c *fiber.Ctx) *session.Session {
	if sess, ok := c.Locals(handlerUtil.SessionLocalsKey).(*session.Session); ok {
		return sess
	}
	return session.From(c.UserContext())
}
