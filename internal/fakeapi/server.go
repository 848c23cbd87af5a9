// Package fakeapi is an in-memory stand-in for the blog REST backend. Tests
// point the client at it and inspect every request it received; cmd/fakeapi
// serves it for local development.
package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"DevBlogFrontend/pkg/bcrypt"
	jwtPkg "DevBlogFrontend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

const (
	AdminEmail    = "admin@devblog.test"
	AdminPassword = "password123"

	tokenSecret = "fakeapi-secret"
	tokenTTL    = time.Hour
)

// Request is one call as the backend saw it.
type Request struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	Form          url.Values
	Files         map[string][]string
	Body          []byte
}

type user struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

type Server struct {
	mu sync.Mutex

	app    *fiber.App
	http   *httptest.Server
	hasher bcrypt.IBcrypt

	clock      time.Time
	generation int

	users    map[string]*user
	blogs    []*Blog
	series   []*Series
	comments []*Comment
	likes    map[string]map[string]bool
	views    map[string]map[string]bool

	requests     []Request
	visitorMints int

	leakDrafts     bool
	visitorFailure bool
	forceStatus    map[string]int
}

func New() *Server {
	s := &Server{
		clock:       time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		users:       make(map[string]*user),
		likes:       make(map[string]map[string]bool),
		views:       make(map[string]map[string]bool),
		forceStatus: make(map[string]int),
		hasher:      bcrypt.NewWithCost(0),
	}
	s.AddUser(AdminEmail, AdminPassword, true)

	s.app = fiber.New(fiber.Config{
		AppName:     "DevBlog Fake API",
		JSONEncoder: jsoniter.Marshal,
		JSONDecoder: jsoniter.Unmarshal,
	})
	s.app.Use(s.record)
	s.routes()

	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api")

	api.Get("/visitor_id", s.handleVisitorID)

	auth := api.Group("/auth")
	auth.Post("/login", s.handleLogin)
	auth.Post("/change-password", s.requireAuth, s.handleChangePassword)

	blog := api.Group("/blog")
	blog.Get("/", s.handleListBlogs)
	blog.Post("/", s.requireAuth, s.handleCreateBlog)
	blog.Get("/your", s.requireAuth, s.handleListYourBlogs)
	blog.Get("/your/:id", s.requireAuth, s.handleGetYourBlog)
	blog.Get("/:id/comments", s.handleListComments)
	blog.Post("/:id/comments", s.handleCreateComment)
	blog.Post("/:id/like", s.handleLike)
	blog.Get("/:slug", s.handleGetBlog)
	blog.Put("/:id", s.requireAuth, s.handleUpdateBlog)
	blog.Delete("/:id", s.requireAuth, s.handleDeleteBlog)

	series := api.Group("/series")
	series.Get("/", s.handleListSeries)
	series.Post("/", s.requireAuth, s.handleCreateSeries)
	series.Get("/your", s.requireAuth, s.handleListYourSeries)
	series.Get("/:idOrSlug", s.handleGetSeries)
	series.Put("/:id", s.requireAuth, s.handleUpdateSeries)
	series.Delete("/:id", s.requireAuth, s.handleDeleteSeries)
}

// Handler exposes the fake as a net/http handler.
func (s *Server) Handler() http.Handler {
	return adaptor.FiberApp(s.app)
}

// Start serves the fake on a loopback port and returns its base URL.
func (s *Server) Start() string {
	s.http = httptest.NewServer(s.Handler())
	return s.http.URL
}

func (s *Server) Close() {
	if s.http != nil {
		s.http.Close()
	}
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) AddUser(email, password string, isAdmin bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		panic(err)
	}

	u := &user{ID: uuid.NewString(), Email: email, PasswordHash: hash, IsAdmin: isAdmin}
	s.users[email] = u
	return u.ID
}

// RevokeTokens invalidates every token issued so far.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()
}

// SetLeakDrafts makes the public blog listing return drafts too, imitating
// a backend that forgets to filter.
func (s *Server) SetLeakDrafts(leak bool) {
	s.mu.Lock()
	s.leakDrafts = leak
	s.mu.Unlock()
}

func (s *Server) SetVisitorFailure(fail bool) {
	s.mu.Lock()
	s.visitorFailure = fail
	s.mu.Unlock()
}

// FailPath answers every request whose path starts with prefix with status.
// A zero status removes the override.
func (s *Server) FailPath(prefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.forceStatus, prefix)
		return
	}
	s.forceStatus[prefix] = status
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// CountRequests counts recorded calls matching method (any when empty) and
// path prefix.
func (s *Server) CountRequests(method, pathPrefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.requests {
		if (method == "" || r.Method == method) && strings.HasPrefix(r.Path, pathPrefix) {
			n++
		}
	}
	return n
}

func (s *Server) ResetRequests() {
	s.mu.Lock()
	s.requests = nil
	s.mu.Unlock()
}

func (s *Server) VisitorMints() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visitorMints
}

func (s *Server) record(c *fiber.Ctx) error {
	req := Request{
		Method:        c.Method(),
		Path:          c.Path(),
		Authorization: c.Get(fiber.HeaderAuthorization),
		Body:          append([]byte(nil), c.Body()...),
	}

	req.Query, _ = url.ParseQuery(string(c.Request().URI().QueryString()))

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if form, err := c.MultipartForm(); err == nil {
			req.Form = url.Values{}
			for k, v := range form.Value {
				req.Form[k] = append([]string(nil), v...)
			}
			req.Files = make(map[string][]string)
			for k, files := range form.File {
				for _, f := range files {
					req.Files[k] = append(req.Files[k], f.Filename)
				}
			}
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	status := 0
	for prefix, code := range s.forceStatus {
		if strings.HasPrefix(req.Path, prefix) {
			status = code
		}
	}
	s.mu.Unlock()

	if status != 0 {
		return c.Status(status).JSON(fiber.Map{"message": http.StatusText(status)})
	}
	return c.Next()
}

func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return unauthorized(c)
	}

	claims, err := jwtPkg.Verify(tokenSecret, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return unauthorized(c)
	}

	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()

	if gen, ok := claims["gen"].(float64); !ok || int(gen) != generation {
		return unauthorized(c)
	}

	c.Locals("user_id", claims["id"])
	return c.Next()
}

// authorized reports whether the request carries a live token without
// rejecting it.
func (s *Server) authorized(c *fiber.Ctx) bool {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return false
	}
	claims, err := jwtPkg.Verify(tokenSecret, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	gen, ok := claims["gen"].(float64)
	return ok && int(gen) == s.generation
}

// tick advances the fake clock so creation order is deterministic.
func (s *Server) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": what + " not found"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": msg})
}
