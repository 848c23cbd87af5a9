package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"DevBlogFrontend/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	ErrTooManyRequests = response.NewError(http.StatusTooManyRequests, "too many requests")
)

const limiterIdleTTL = 10 * time.Minute

type visitorLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client key. Buckets idle for
// longer than limiterIdleTTL are dropped on the next sweep.
type rateLimiter struct {
	mu        sync.Mutex
	bucket    map[string]*visitorLimiter
	rate      rate.Limit
	burstSize int
	lastSweep time.Time
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	return &rateLimiter{
		bucket:    make(map[string]*visitorLimiter),
		rate:      reqRate,
		burstSize: burstSize,
	}
}

func (r *rateLimiter) limiterFor(key string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.lastSweep) > limiterIdleTTL {
		for k, v := range r.bucket {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(r.bucket, k)
			}
		}
		r.lastSweep = now
	}

	v, ok := r.bucket[key]
	if !ok {
		v = &visitorLimiter{limiter: rate.NewLimiter(r.rate, r.burstSize)}
		r.bucket[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (r *rateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bucket)
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()
	limiter := m.rateLimitter.limiterFor(clientIP, m.now())

	if !limiter.Allow() {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"ip":         clientIP,
			"path":       ctx.Path(),
		}).Warn("Too many requests")

		ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(m.rateLimitter.rate)))
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": ErrTooManyRequests.Error(),
		})
	}

	return ctx.Next()
}

func retryAfterSeconds(limit rate.Limit) int {
	if limit <= 0 || limit == rate.Inf {
		return 1
	}
	secs := int(1/float64(limit)) + 1
	if secs < 1 {
		return 1
	}
	return secs
}
