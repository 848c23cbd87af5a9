package commentService

import (
	"fmt"
	"sort"
	"strings"

	comments "DevBlogFrontend/internal/api/comment"
	"DevBlogFrontend/internal/entity"
	contextPkg "DevBlogFrontend/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ListLimit is the page size asked of the backend.
const ListLimit = 50

func (s *commentService) GetCommentsByBlogID(ctx context.Context, blogID string) ([]entity.Comment, error) {
	blogID = strings.TrimSpace(blogID)
	if blogID == "" {
		return nil, comments.ErrBlogIDRequired
	}

	list, _, err := s.commentRepo.ListComments(ctx, blogID, ListLimit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"blog_id":    blogID,
			"error":      err.Error(),
		}).Error("Failed to get comments")
		return nil, err
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// AddComment posts a comment as name, or anonymously when name is blank.
func (s *commentService) AddComment(ctx context.Context, blogID, name, text string) (*entity.Comment, error) {
	requestID := contextPkg.GetRequestID(ctx)

	blogID = strings.TrimSpace(blogID)
	if blogID == "" {
		return nil, comments.ErrBlogIDRequired
	}

	req := comments.CreateCommentRequest{
		Name:    strings.TrimSpace(name),
		Comment: strings.TrimSpace(text),
	}
	if err := s.validator.Struct(req); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"blog_id":    blogID,
			"error":      err.Error(),
		}).Warn("Invalid comment data")
		return nil, fmt.Errorf("%w: %w", comments.ErrInvalidCommentData, err)
	}

	created, err := s.commentRepo.CreateComment(ctx, blogID, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"blog_id":    blogID,
			"error":      err.Error(),
		}).Error("Failed to add comment")
		return nil, err
	}

	if created.Username == "" {
		created.Username = entity.AnonymousName
	}
	return &created, nil
}

// CountComments reports the backend's total, which may exceed the listed
// page.
func (s *commentService) CountComments(ctx context.Context, blogID string) (int, error) {
	blogID = strings.TrimSpace(blogID)
	if blogID == "" {
		return 0, comments.ErrBlogIDRequired
	}

	_, total, err := s.commentRepo.ListComments(ctx, blogID, ListLimit)
	if err != nil {
		return 0, err
	}
	return total, nil
}
