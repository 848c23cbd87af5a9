package visitorRepository

import (
	"DevBlogFrontend/internal/api/visitor"
	"DevBlogFrontend/internal/client"
	contextPkg "DevBlogFrontend/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const pathVisitorID = "/api/visitor_id"

type Repository interface {
	MintVisitorID(ctx context.Context) (string, error)
}

type repository struct {
	api *client.Client
	log *logrus.Logger
}

func New(api *client.Client, log *logrus.Logger) Repository {
	return &repository{
		api: api,
		log: log,
	}
}

func (r *repository) MintVisitorID(ctx context.Context) (string, error) {
	var resp visitor.VisitorIDResponse
	if err := r.api.Get(ctx, pathVisitorID, client.Options{}, &resp); err != nil {
		return "", err
	}

	if resp.Data.VisitorID == "" {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
		}).Warn("Visitor endpoint returned no id")
		return "", visitor.ErrEmptyVisitorID
	}

	return resp.Data.VisitorID, nil
}
