package client

import (
	"context"
	"net/http"
	"regexp"

	"DevBlogFrontend/internal/session"
	"DevBlogFrontend/pkg/events"

	"github.com/sirupsen/logrus"
)

const QueryVisitorID = "visitor_id"

type visitorRoute struct {
	method  string
	pattern *regexp.Regexp
}

// Only these request shapes carry the visitor id: blog detail, like and
// comment.
var visitorRoutes = []visitorRoute{
	{http.MethodGet, regexp.MustCompile(`api/blog/[^/]+$`)},
	{http.MethodPost, regexp.MustCompile(`api/blog/[^/]+/like$`)},
	{http.MethodPost, regexp.MustCompile(`api/blog/[^/]+/comments$`)},
}

func AuthInterceptor(ctx context.Context, req *Request) error {
	token, err := session.From(ctx).AccessToken(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set(HeaderAuthorization, "Bearer "+token)
	}
	return nil
}

func VisitorInterceptor(ctx context.Context, req *Request) error {
	visitorID, err := session.From(ctx).VisitorID(ctx)
	if err != nil {
		return err
	}
	if visitorID == "" || !WantsVisitorID(req.Method, req.Path) {
		return nil
	}
	req.Query.Set(QueryVisitorID, visitorID)
	return nil
}

// WantsVisitorID matches on method and path shape only.
func WantsVisitorID(method, path string) bool {
	for _, r := range visitorRoutes {
		if r.method == method && r.pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// UnauthorizedInterceptor tears the stored login down and sends the browser
// to the login page when a 401 arrives while it is inside the admin area.
// Outside the admin area a 401 leaves storage alone.
func UnauthorizedInterceptor(log *logrus.Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, status int) {
		if status != http.StatusUnauthorized {
			return
		}

		sess := session.From(ctx)
		if !sess.UnderAdmin() {
			return
		}

		fields := logrus.Fields{
			"request_id": req.Header.Get(HeaderRequestID),
			"scope":      sess.Scope(),
			"location":   sess.Location(),
			"path":       req.Path,
		}

		if err := sess.Clear(ctx); err != nil {
			fields["error"] = err.Error()
			log.WithFields(fields).Error("Failed to clear session after unauthorized response")
		} else {
			log.WithFields(fields).Warn("Admin session rejected, redirecting to login")
		}

		sess.Publish(events.AuthTeardown, "")
		sess.Redirect(session.LoginPath)
	}
}
