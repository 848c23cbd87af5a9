package commentRepository

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	comments "DevBlogFrontend/internal/api/comment"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/entity"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/response"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	pathComments = "api/blog/%s/comments"
	queryLimit   = "limit"
)

type CommentAPI struct {
	MongoID   string    `json:"_id"`
	ID        string    `json:"id"`
	BlogID    string    `json:"blog_id"`
	VisitorID *string   `json:"visitor_id"`
	Name      *string   `json:"name"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentListResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    []CommentAPI `json:"data"`
	Total   int          `json:"total"`
}

type CommentMutationResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    CommentAPI `json:"data"`
}

type createCommentPayload struct {
	Name    *string `json:"name,omitempty"`
	Comment string  `json:"comment"`
}

func (c CommentAPI) toEntity() entity.Comment {
	id := c.MongoID
	if id == "" {
		id = c.ID
	}

	out := entity.Comment{
		ID:        id,
		BlogID:    c.BlogID,
		Username:  entity.AnonymousName,
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Name != nil && *c.Name != "" {
		out.Username = *c.Name
	}
	if c.VisitorID != nil {
		out.VisitorID = *c.VisitorID
	}
	return out
}

func (r *repository) ListComments(ctx context.Context, blogID string, limit int) ([]entity.Comment, int, error) {
	opts := client.Options{Query: url.Values{queryLimit: {strconv.Itoa(limit)}}}

	var resp CommentListResponse
	if err := r.api.Get(ctx, fmt.Sprintf(pathComments, url.PathEscape(blogID)), opts, &resp); err != nil {
		if response.IsNotFound(err) {
			return nil, 0, comments.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"blog_id":    blogID,
			"error":      err.Error(),
		}).Error("API error when listing comments")
		return nil, 0, err
	}

	out := make([]entity.Comment, 0, len(resp.Data))
	for _, c := range resp.Data {
		out = append(out, c.toEntity())
	}

	total := resp.Total
	if total < len(out) {
		total = len(out)
	}
	return out, total, nil
}

func (r *repository) CreateComment(ctx context.Context, blogID string, req comments.CreateCommentRequest) (entity.Comment, error) {
	payload := createCommentPayload{Comment: req.Comment}
	if req.Name != "" {
		payload.Name = &req.Name
	}

	var resp CommentMutationResponse
	if err := r.api.Post(ctx, fmt.Sprintf(pathComments, url.PathEscape(blogID)), client.Options{JSON: payload}, &resp); err != nil {
		if response.IsNotFound(err) {
			return entity.Comment{}, comments.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"blog_id":    blogID,
			"error":      err.Error(),
		}).Error("API error when creating comment")
		return entity.Comment{}, err
	}

	created := resp.Data.toEntity()
	if created.BlogID == "" {
		created.BlogID = blogID
	}
	return created, nil
}
