package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"DevBlogFrontend/pkg/log"

	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
)

func newApp(m Middleware, handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	for _, h := range handlers {
		app.Use(h)
	}
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})
	return app
}

func get(t *testing.T, app *fiber.App, header map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	m := New(log.NewDiscard(), Config{RateLimit: 1, RateBurst: 2})
	app := newApp(m, m.NewRequestIDMiddleware(), m.NewRateLimiter)

	for i := 0; i < 2; i++ {
		if resp := get(t, app, nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, resp.StatusCode)
		}
	}

	resp := get(t, app, nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderRetryAfter); got != "2" {
		t.Errorf("Retry-After = %q, want 2", got)
	}
}

func TestRateLimiterDropsIdleBuckets(t *testing.T) {
	r := newRateLimiter(1, 1)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	r.limiterFor("10.0.0.1", start)
	r.limiterFor("10.0.0.2", start.Add(time.Minute))
	if got := r.size(); got != 2 {
		t.Fatalf("size = %d, want 2", got)
	}

	r.limiterFor("10.0.0.3", start.Add(limiterIdleTTL+2*time.Minute))
	if got := r.size(); got != 1 {
		t.Errorf("size after sweep = %d, want 1", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	m := New(log.NewDiscard(), Config{})
	app := newApp(m, m.NewRequestIDMiddleware())

	resp := get(t, app, map[string]string{fiber.HeaderXRequestID: "trace-42"})
	if got := resp.Header.Get(fiber.HeaderXRequestID); got != "trace-42" {
		t.Errorf("echoed id = %q, want trace-42", got)
	}

	resp = get(t, app, map[string]string{fiber.HeaderXRequestID: "<script>alert(1)</script>"})
	got := resp.Header.Get(fiber.HeaderXRequestID)
	if _, err := ulid.ParseStrict(got); err != nil {
		t.Errorf("replacement id %q is not a ULID: %v", got, err)
	}

	resp = get(t, app, nil)
	if _, err := ulid.ParseStrict(resp.Header.Get(fiber.HeaderXRequestID)); err != nil {
		t.Errorf("minted id is not a ULID: %v", err)
	}
}
