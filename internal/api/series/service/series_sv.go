package seriesService

import (
	"errors"
	"fmt"
	"strings"

	"DevBlogFrontend/internal/api/series"
	blogService "DevBlogFrontend/internal/api/blog/service"
	"DevBlogFrontend/internal/entity"
	contextPkg "DevBlogFrontend/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// GetAllSeries lists published series with their published posts.
func (s *seriesService) GetAllSeries(ctx context.Context) ([]entity.Series, error) {
	list, err := s.seriesRepo.GetAllSeries(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Error fetching series")
		return nil, err
	}

	published := list[:0:0]
	for _, sr := range list {
		if sr.Published {
			published = append(published, sr)
		}
	}

	return s.attachBlogs(ctx, published, false)
}

// GetAllSeriesAdmin lists every series with every post, drafts included.
func (s *seriesService) GetAllSeriesAdmin(ctx context.Context) ([]entity.Series, error) {
	list, err := s.seriesRepo.GetYourSeries(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Error fetching admin series")
		return nil, err
	}

	return s.attachBlogs(ctx, list, true)
}

// attachBlogs fills every series from a single blog listing.
func (s *seriesService) attachBlogs(ctx context.Context, list []entity.Series, isAdmin bool) ([]entity.Series, error) {
	if len(list) == 0 {
		return []entity.Series{}, nil
	}

	blogs, err := s.blogService.GetAllBlogs(ctx, isAdmin, "")
	if err != nil {
		return nil, err
	}

	for i := range list {
		list[i].Blogs = blogService.FilterBySeries(blogs, list[i].ID, isAdmin)
	}
	return list, nil
}

func (s *seriesService) GetSeriesBySlug(ctx context.Context, slug string, isAdmin bool) (*entity.Series, error) {
	return s.getSeries(ctx, slug, isAdmin)
}

func (s *seriesService) GetSeriesByID(ctx context.Context, id string, isAdmin bool) (*entity.Series, error) {
	return s.getSeries(ctx, id, isAdmin)
}

// getSeries returns (nil, nil) when the series does not exist or is hidden
// from the viewer.
func (s *seriesService) getSeries(ctx context.Context, idOrSlug string, isAdmin bool) (*entity.Series, error) {
	requestID := contextPkg.GetRequestID(ctx)

	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return nil, nil
	}

	sr, err := s.seriesRepo.GetSeries(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, series.ErrSeriesNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"key":        idOrSlug,
			}).Warn("Series not found")
			return nil, nil
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"key":        idOrSlug,
			"error":      err.Error(),
		}).Error("Error fetching series")
		return nil, err
	}

	if !isAdmin && !sr.Published {
		return nil, nil
	}

	sr.Blogs, err = s.blogService.GetBlogsBySeries(ctx, sr.ID, isAdmin)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (s *seriesService) CreateSeries(ctx context.Context, req series.CreateSeriesRequest) (*entity.Series, error) {
	requestID := contextPkg.GetRequestID(ctx)

	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)

	if err := s.validator.Struct(req); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid series data")
		return nil, fmt.Errorf("%w: %w", series.ErrInvalidSeriesData, err)
	}

	created, err := s.seriesRepo.CreateSeries(ctx, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       req.Slug,
			"error":      err.Error(),
		}).Error("Error creating series")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         created.ID,
	}).Info("Series created")

	created.Blogs = []entity.Blog{}
	return &created, nil
}

func (s *seriesService) UpdateSeries(ctx context.Context, id string, req series.UpdateSeriesRequest) (*entity.Series, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(id) == "" {
		return nil, series.ErrSeriesIDRequired
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		req.Slug = &slug
	}

	if err := s.validator.Struct(req); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Warn("Invalid series data")
		return nil, fmt.Errorf("%w: %w", series.ErrInvalidSeriesData, err)
	}

	updated, err := s.seriesRepo.UpdateSeries(ctx, id, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Error updating series")
		return nil, err
	}

	updated.Blogs, err = s.blogService.GetBlogsBySeries(ctx, updated.ID, true)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *seriesService) TogglePublish(ctx context.Context, id string, published bool) (*entity.Series, error) {
	return s.UpdateSeries(ctx, id, series.UpdateSeriesRequest{Published: &published})
}

func (s *seriesService) DeleteSeries(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(id) == "" {
		return series.ErrSeriesIDRequired
	}

	if err := s.seriesRepo.DeleteSeries(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Error deleting series")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         id,
	}).Info("Series deleted")
	return nil
}
