// Package client is the single HTTP pipeline every API module talks
// through. It owns the base URL, default headers, auth and visitor
// interceptors and the handling of admin-scoped 401s.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/metrics"
	"DevBlogFrontend/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"

	ContentTypeJSON = "application/json"

	maxResponseBody = 10 << 20
)

// Options shapes one request. At most one of JSON and Form is used; Form
// wins when both are set.
type Options struct {
	Query url.Values
	JSON  interface{}
	Form  *Multipart
}

// Request is what interceptors see and may modify before the call is sent.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor observes the status of a completed call. It cannot
// change the outcome: errors still reach the caller.
type ResponseInterceptor func(ctx context.Context, req *Request, status int)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL              string
	http                 *http.Client
	log                  *logrus.Logger
	metrics              *metrics.Metrics
	utils                utils.IUtils
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

type Option func(*Client)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New builds the pipeline with the auth, visitor and unauthorized
// interceptors installed.
func New(log *logrus.Logger, cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		log.Warn("API base URL is not configured. API requests will fail.")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
		utils:   utils.New(),
		requestInterceptors: []RequestInterceptor{
			AuthInterceptor,
			VisitorInterceptor,
		},
		responseInterceptors: []ResponseInterceptor{
			UnauthorizedInterceptor(log),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Get(ctx context.Context, path string, opts Options, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, opts, out)
}

func (c *Client) Post(ctx context.Context, path string, opts Options, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, opts, out)
}

func (c *Client) Put(ctx context.Context, path string, opts Options, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, opts, out)
}

func (c *Client) Delete(ctx context.Context, path string, opts Options, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, opts, out)
}

// Do sends one request through the interceptor chain and decodes a 2xx
// body into out when out is non-nil. Non-2xx responses come back as
// *APIError.
func (c *Client) Do(ctx context.Context, method, path string, opts Options, out interface{}) error {
	requestID := contextPkg.GetRequestID(ctx)
	if requestID == "unknown" {
		requestID = c.utils.NewRequestID()
	}

	req := &Request{
		Method: method,
		Path:   path,
		Query:  cloneValues(opts.Query),
		Header: http.Header{},
	}
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	req.Header.Set(HeaderRequestID, requestID)

	for _, intercept := range c.requestInterceptors {
		if err := intercept(ctx, req); err != nil {
			return fmt.Errorf("prepare %s %s: %w", method, path, err)
		}
	}

	body, err := encodeBody(req, opts)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", method, path, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.resolve(req), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	httpReq.Header = req.Header

	route := routeLabel(path)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.metrics.ObserveRequest(method, route, 0, time.Since(start))
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     method,
			"path":       path,
			"error":      err.Error(),
		}).Error("API request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	elapsed := time.Since(start)
	c.metrics.ObserveRequest(method, route, resp.StatusCode, elapsed)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	for _, intercept := range c.responseInterceptors {
		intercept(ctx, req, resp.StatusCode)
	}

	fields := logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"latency_ms": elapsed.Milliseconds(),
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithFields(fields).Warn("API request returned error status")
		return newAPIError(resp.StatusCode, raw)
	}

	c.log.WithFields(fields).Debug("API request completed")

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := jsoniter.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) resolve(req *Request) string {
	u := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + req.Query.Encode()
	}
	return u
}

func encodeBody(req *Request, opts Options) (io.Reader, error) {
	switch {
	case opts.Form != nil:
		buf := &bytes.Buffer{}
		contentType, err := opts.Form.Encode(buf)
		if err != nil {
			return nil, err
		}
		req.Header.Set(HeaderContentType, contentType)
		return buf, nil
	case opts.JSON != nil:
		raw, err := jsoniter.Marshal(opts.JSON)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(raw), nil
	default:
		return nil, nil
	}
}

func cloneValues(v url.Values) url.Values {
	out := url.Values{}
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
