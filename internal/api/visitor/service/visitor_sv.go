package visitorService

import (
	"DevBlogFrontend/internal/session"
	contextPkg "DevBlogFrontend/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// GetVisitorID returns the cached visitor id, minting and caching one on
// first use. Concurrent first calls from the same browser share a single
// mint. Failures are logged and yield "".
func (s *visitorService) GetVisitorID(ctx context.Context) string {
	requestID := contextPkg.GetRequestID(ctx)
	sess := session.From(ctx)

	if id := s.GetStoredVisitorID(ctx); id != "" {
		return id
	}

	mint := func() (interface{}, error) {
		// Another caller may have finished minting while we waited.
		if id := s.GetStoredVisitorID(ctx); id != "" {
			return id, nil
		}

		id, err := s.visitorRepo.MintVisitorID(ctx)
		if err != nil {
			return "", err
		}

		if err := sess.SetVisitorID(ctx, id); err != nil {
			return "", err
		}

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"scope":      sess.Scope(),
		}).Info("Visitor id issued")

		return id, nil
	}

	var (
		v   interface{}
		err error
	)
	if scope := sess.Scope(); scope != "" {
		v, err, _ = s.mint.Do(scope, mint)
	} else {
		v, err = mint()
	}

	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"scope":      sess.Scope(),
			"error":      err.Error(),
		}).Error("Error fetching visitor ID")
		return ""
	}

	id, _ := v.(string)
	return id
}

func (s *visitorService) EnsureVisitorID(ctx context.Context) {
	s.GetVisitorID(ctx)
}

func (s *visitorService) GetStoredVisitorID(ctx context.Context) string {
	id, err := session.From(ctx).VisitorID(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to read stored visitor id")
		return ""
	}
	return id
}
