package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"DevBlogFrontend/internal/entity"
	"DevBlogFrontend/internal/session"
	"DevBlogFrontend/pkg/events"
	"DevBlogFrontend/pkg/log"
	"DevBlogFrontend/pkg/metrics"
	"DevBlogFrontend/pkg/response"
	"DevBlogFrontend/pkg/storage"
)

type captured struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type recorder struct {
	mu       sync.Mutex
	requests []captured
	status   int
	body     string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)

	r.mu.Lock()
	r.requests = append(r.requests, captured{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.Query(),
		Header: req.Header.Clone(),
		Body:   body,
	})
	status, respBody := r.status, r.body
	r.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, respBody)
}

func (r *recorder) last(t *testing.T) captured {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		t.Fatal("no request reached the server")
	}
	return r.requests[len(r.requests)-1]
}

func setup(t *testing.T) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{body: `{}`}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	c := New(log.NewDiscard(), Config{BaseURL: srv.URL + "/"}, WithMetrics(metrics.New()))
	return c, rec
}

func browser(t *testing.T, location string, values map[string]string) (context.Context, *session.Session) {
	t.Helper()
	store := storage.NewMemory()
	for k, v := range values {
		if err := store.Set(context.Background(), k, v); err != nil {
			t.Fatal(err)
		}
	}
	s := session.New("b1", store, location)
	return session.With(context.Background(), s), s
}

func TestVisitorIDInjection(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   bool
	}{
		{"blog detail", http.MethodGet, "api/blog/my-post", true},
		{"like", http.MethodPost, "api/blog/abc/like", true},
		{"comment", http.MethodPost, "api/blog/abc/comments", true},
		{"list", http.MethodGet, "api/blog", false},
		{"comment list", http.MethodGet, "api/blog/abc/comments", false},
		{"delete", http.MethodDelete, "api/blog/abc", false},
		{"admin detail", http.MethodGet, "api/blog/your/abc", false},
		{"series", http.MethodGet, "api/series/x", false},
		{"leading slash", http.MethodGet, "/api/blog/post", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := setup(t)
			ctx, _ := browser(t, "/", map[string]string{storage.KeyVisitorID: "v-42"})

			opts := Options{Query: url.Values{"limit": {"50"}}}
			if err := c.Do(ctx, tt.method, tt.path, opts, nil); err != nil {
				t.Fatalf("Do() error = %v", err)
			}

			got := rec.last(t)
			has := got.Query.Get(QueryVisitorID) == "v-42"
			if has != tt.want {
				t.Errorf("visitor_id present = %v, want %v (query %v)", has, tt.want, got.Query)
			}
			if got.Query.Get("limit") != "50" {
				t.Errorf("existing query param lost: %v", got.Query)
			}
		})
	}
}

func TestNoVisitorIDStored(t *testing.T) {
	c, rec := setup(t)
	ctx, _ := browser(t, "/", nil)

	if err := c.Get(ctx, "api/blog/post", Options{}, nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := rec.last(t).Query[QueryVisitorID]; ok {
		t.Error("visitor_id sent with nothing stored")
	}
}

func TestBearerHeader(t *testing.T) {
	c, rec := setup(t)

	ctx, _ := browser(t, "/", map[string]string{storage.KeyAccessToken: "tok"})
	if err := c.Get(ctx, "api/series", Options{}, nil); err != nil {
		t.Fatal(err)
	}
	if got := rec.last(t).Header.Get(HeaderAuthorization); got != "Bearer tok" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer tok")
	}

	anon, _ := browser(t, "/", nil)
	if err := c.Get(anon, "api/series", Options{}, nil); err != nil {
		t.Fatal(err)
	}
	if got := rec.last(t).Header.Get(HeaderAuthorization); got != "" {
		t.Errorf("Authorization = %q, want none", got)
	}
}

func TestDefaultHeaders(t *testing.T) {
	c, rec := setup(t)
	ctx, _ := browser(t, "/", nil)

	if err := c.Post(ctx, "api/auth/login", Options{JSON: map[string]string{"email": "a"}}, nil); err != nil {
		t.Fatal(err)
	}
	got := rec.last(t)
	if ct := got.Header.Get(HeaderContentType); ct != ContentTypeJSON {
		t.Errorf("Content-Type = %q, want %q", ct, ContentTypeJSON)
	}
	if got.Header.Get(HeaderRequestID) == "" {
		t.Error("X-Request-ID missing")
	}
	if string(got.Body) != `{"email":"a"}` {
		t.Errorf("body = %s", got.Body)
	}
	if got.Path != "/api/auth/login" {
		t.Errorf("path = %q, want /api/auth/login", got.Path)
	}
}

func TestUnauthorizedUnderAdminTearsDown(t *testing.T) {
	c, rec := setup(t)
	rec.status = http.StatusUnauthorized
	rec.body = `{"message":"token expired"}`

	broker := events.NewBroker[events.AuthEvent]()
	defer broker.Close()
	sub, stop := broker.Subscribe(1)
	defer stop()

	store := storage.NewMemory()
	s := session.New("b1", store, "/admin/blogs", session.WithEvents(broker))
	ctx := session.With(context.Background(), s)
	if err := s.Persist(ctx, entity.Session{AccessToken: "a", RefreshToken: "r", User: &entity.User{ID: "u", IsAdmin: true}}); err != nil {
		t.Fatal(err)
	}
	<-sub
	_ = s.SetVisitorID(ctx, "v1")

	err := c.Get(ctx, "api/blog/your", Options{}, nil)
	if !response.IsUnauthorized(err) {
		t.Fatalf("err = %v, want unauthorized", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "token expired" {
		t.Errorf("APIError = %+v, want message %q", apiErr, "token expired")
	}

	for _, key := range storage.AuthKeys {
		if _, ok, _ := store.Get(ctx, key); ok {
			t.Errorf("%s still stored after admin 401", key)
		}
	}
	if v, _ := s.VisitorID(ctx); v != "v1" {
		t.Errorf("visitor id = %q, want kept", v)
	}
	if to, ok := s.Redirected(); !ok || to != session.LoginPath {
		t.Errorf("Redirected() = (%q, %v), want (%q, true)", to, ok, session.LoginPath)
	}

	select {
	case ev := <-sub:
		if ev.Kind != events.AuthTeardown {
			t.Errorf("event kind = %v, want teardown", ev.Kind)
		}
	default:
		t.Error("no teardown event")
	}
}

func TestUnauthorizedOnPublicRouteLeavesStorage(t *testing.T) {
	c, rec := setup(t)
	rec.status = http.StatusUnauthorized

	ctx, s := browser(t, "/blog/post", map[string]string{
		storage.KeyAccessToken:  "a",
		storage.KeyRefreshToken: "r",
		storage.KeyUser:         `{"id":"u","isAdmin":true}`,
	})

	err := c.Get(ctx, "api/blog/your", Options{}, nil)
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("err = %v, want 401", err)
	}

	for _, key := range storage.AuthKeys {
		if _, ok, _ := s.Store().Get(ctx, key); !ok {
			t.Errorf("%s removed by public 401", key)
		}
	}
	if _, ok := s.Redirected(); ok {
		t.Error("public 401 triggered a redirect")
	}
}

func TestErrorStatusPropagates(t *testing.T) {
	c, rec := setup(t)
	rec.status = http.StatusNotFound
	rec.body = `{"error":"blog not found"}`
	ctx, _ := browser(t, "/", nil)

	err := c.Get(ctx, "api/blog/missing", Options{}, nil)
	if !response.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	if len(rec.requests) != 1 {
		t.Errorf("requests = %d, want 1 (no retries)", len(rec.requests))
	}
}

func TestDecodeResponse(t *testing.T) {
	c, rec := setup(t)
	rec.body = `{"data":{"visitor_id":"abc"}}`
	ctx, _ := browser(t, "/", nil)

	var out struct {
		Data struct {
			VisitorID string `json:"visitor_id"`
		} `json:"data"`
	}
	if err := c.Get(ctx, "/api/visitor_id", Options{}, &out); err != nil {
		t.Fatal(err)
	}
	if out.Data.VisitorID != "abc" {
		t.Errorf("visitor_id = %q, want %q", out.Data.VisitorID, "abc")
	}
}

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"api/blog":                 "api/blog",
		"api/blog/my-post":         "api/blog/:id",
		"/api/blog/x/like":         "api/blog/:id/like",
		"api/blog/your/123":        "api/blog/your/:id",
		"api/series/s1":            "api/series/:id",
		"api/auth/change-password": "api/auth/change-password",
	}
	for in, want := range tests {
		if got := routeLabel(in); got != want {
			t.Errorf("routeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
