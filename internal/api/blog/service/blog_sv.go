package blogService

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	blogs "DevBlogFrontend/internal/api/blog"
	blogRepository "DevBlogFrontend/internal/api/blog/repository"
	"DevBlogFrontend/internal/entity"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/nlp"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// GetAllBlogs lists every publish state for admins. The public listing is
// filtered to published posts here as well, whatever the backend returns.
func (s *blogService) GetAllBlogs(ctx context.Context, isAdmin bool, seriesID string) ([]entity.Blog, error) {
	requestID := contextPkg.GetRequestID(ctx)
	seriesID = blogs.NormalizeSeriesID(seriesID)

	var (
		list []entity.Blog
		err  error
	)
	if isAdmin {
		list, err = s.blogRepo.GetYourBlogs(ctx, seriesID)
	} else {
		list, err = s.blogRepo.GetAllBlogs(ctx, seriesID)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"is_admin":   isAdmin,
			"error":      err.Error(),
		}).Error("Failed to get blogs")
		return nil, err
	}

	if !isAdmin {
		list = publishedOnly(list)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	return list, nil
}

func (s *blogService) GetBlogBySlug(ctx context.Context, slug string) (*entity.Blog, error) {
	return s.getBlog(ctx, slug, blogRepository.BySlug)
}

func (s *blogService) GetBlogByID(ctx context.Context, id string) (*entity.Blog, error) {
	return s.getBlog(ctx, id, blogRepository.ByID)
}

// getBlog returns (nil, nil) when the blog does not exist.
func (s *blogService) getBlog(ctx context.Context, key string, kind blogRepository.LookupKind) (*entity.Blog, error) {
	requestID := contextPkg.GetRequestID(ctx)

	blog, err := s.blogRepo.GetBlog(ctx, key, kind)
	if err != nil {
		if errors.Is(err, blogs.ErrBlogNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"key":        key,
			}).Warn("Blog not found")
			return nil, nil
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"key":        key,
			"error":      err.Error(),
		}).Error("Failed to get blog")
		return nil, err
	}

	return &blog, nil
}

func (s *blogService) CreateBlog(ctx context.Context, req blogs.CreateBlogRequest) (*entity.Blog, error) {
	requestID := contextPkg.GetRequestID(ctx)

	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	req.Tags = blogs.CleanTags(req.Tags)
	req.SeriesID = blogs.NormalizeSeriesID(req.SeriesID)

	if err := s.validator.Struct(req); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid blog data")
		return nil, fmt.Errorf("%w: %w", blogs.ErrInvalidBlogData, err)
	}
	if req.Thumbnail.Empty() {
		return nil, blogs.ErrThumbnailRequired
	}

	blog, err := s.blogRepo.CreateBlog(ctx, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       req.Slug,
			"error":      err.Error(),
		}).Error("Failed to create blog")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         blog.ID,
		"published":  blog.Published,
	}).Info("Blog created")

	return &blog, nil
}

// UpdateBlog applies a sparse update. A series id of "" or "none" detaches
// the blog from its series.
func (s *blogService) UpdateBlog(ctx context.Context, id string, req blogs.UpdateBlogRequest) (*entity.Blog, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if req.Tags != nil {
		req.Tags = blogs.CleanTags(req.Tags)
	}
	if req.SeriesID != nil {
		seriesID := blogs.NormalizeSeriesID(*req.SeriesID)
		req.SeriesID = &seriesID
	}

	if err := s.validator.Struct(req); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Warn("Invalid blog data")
		return nil, fmt.Errorf("%w: %w", blogs.ErrInvalidBlogData, err)
	}

	blog, err := s.blogRepo.UpdateBlog(ctx, id, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to update blog")
		return nil, err
	}

	return &blog, nil
}

// SetPublished writes the published flag and nothing else.
func (s *blogService) SetPublished(ctx context.Context, id string, published bool) (*entity.Blog, error) {
	return s.UpdateBlog(ctx, id, blogs.UpdateBlogRequest{Published: &published})
}

// TogglePublish reads the current state and writes its negation. Two
// concurrent toggles of the same blog can lose one update; the last write
// wins.
func (s *blogService) TogglePublish(ctx context.Context, id string) (*entity.Blog, error) {
	current, err := s.GetBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, blogs.ErrBlogNotFound
	}

	return s.SetPublished(ctx, id, !current.Published)
}

func (s *blogService) DeleteBlog(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.blogRepo.DeleteBlog(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete blog")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         id,
	}).Info("Blog deleted")

	return nil
}

// IncrementLikes likes the blog on behalf of the current visitor and marks
// the returned copy as liked.
func (s *blogService) IncrementLikes(ctx context.Context, id string) (*entity.Blog, error) {
	blog, err := s.blogRepo.LikeBlog(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to like blog")
		return nil, err
	}

	blog.Liked = true
	return &blog, nil
}

// GetBlogsBySeries returns a series' posts oldest first. Public viewers only
// see published posts.
func (s *blogService) GetBlogsBySeries(ctx context.Context, seriesID string, isAdmin bool) ([]entity.Blog, error) {
	seriesID = blogs.NormalizeSeriesID(seriesID)
	if seriesID == "" {
		return []entity.Blog{}, nil
	}

	list, err := s.GetAllBlogs(ctx, isAdmin, seriesID)
	if err != nil {
		return nil, err
	}

	return FilterBySeries(list, seriesID, isAdmin), nil
}

// SearchBlogs matches query case-insensitively against title, content and
// tags. An empty query returns everything visible to the viewer.
func (s *blogService) SearchBlogs(ctx context.Context, query string, isAdmin bool) ([]entity.Blog, error) {
	list, err := s.GetAllBlogs(ctx, isAdmin, "")
	if err != nil {
		return nil, err
	}

	term := nlp.Fold(strings.TrimSpace(query))
	if term == "" {
		return list, nil
	}

	out := make([]entity.Blog, 0, len(list))
	for _, b := range list {
		if matches(b, term) {
			out = append(out, b)
		}
	}
	return out, nil
}

// FilterBySeries keeps the posts of one series, oldest first, dropping
// drafts unless includeDrafts is set.
func FilterBySeries(list []entity.Blog, seriesID string, includeDrafts bool) []entity.Blog {
	out := make([]entity.Blog, 0)
	for _, b := range list {
		if b.SeriesID != seriesID {
			continue
		}
		if !includeDrafts && !b.Published {
			continue
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func publishedOnly(list []entity.Blog) []entity.Blog {
	out := list[:0:0]
	for _, b := range list {
		if b.Published {
			out = append(out, b)
		}
	}
	return out
}

func matches(b entity.Blog, term string) bool {
	if nlp.Contains(b.Title, term) || nlp.Contains(b.Content, term) {
		return true
	}
	for _, tag := range b.Tags {
		if nlp.Contains(tag, term) {
			return true
		}
	}
	return false
}
