package blogService

import (
	"fmt"
	"strings"

	blogs "DevBlogFrontend/internal/api/blog"
	"DevBlogFrontend/internal/entity"
	"DevBlogFrontend/internal/session"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/markdown"
	"DevBlogFrontend/pkg/storage"
	"DevBlogFrontend/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// SavePreview stores the editor state for the preview page. The slug falls
// back to one generated from the title.
func (s *blogService) SavePreview(ctx context.Context, req blogs.PreviewRequest) (entity.BlogDraft, error) {
	requestID := contextPkg.GetRequestID(ctx)

	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid preview data")
		return entity.BlogDraft{}, fmt.Errorf("%w: %w", blogs.ErrInvalidPreviewData, err)
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.GenerateSlug(req.Title)
	}

	draft := entity.BlogDraft{
		Title:     req.Title,
		Slug:      slug,
		Content:   req.Content,
		Thumbnail: req.Thumbnail,
		Tags:      blogs.CleanTags(req.Tags),
		Published: req.Published,
		SeriesID:  blogs.NormalizeSeriesID(req.SeriesID),
		IsPreview: true,
	}

	raw, err := jsoniter.MarshalToString(draft)
	if err != nil {
		return entity.BlogDraft{}, err
	}

	if err := session.From(ctx).Store().Set(ctx, storage.KeyBlogPreview, raw); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store preview draft")
		return entity.BlogDraft{}, err
	}

	return draft, nil
}

// LoadPreview returns the saved draft without clearing it, or nil when none
// is saved.
func (s *blogService) LoadPreview(ctx context.Context) (*entity.BlogDraft, error) {
	raw, ok, err := session.From(ctx).Store().Get(ctx, storage.KeyBlogPreview)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var draft entity.BlogDraft
	if err := jsoniter.UnmarshalFromString(raw, &draft); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Stored preview draft is unreadable")
		return nil, nil
	}

	return &draft, nil
}

func (s *blogService) RenderPreview(ctx context.Context) (*blogs.PreviewResponse, error) {
	draft, err := s.LoadPreview(ctx)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, blogs.ErrPreviewNotFound
	}

	html, err := markdown.Render(draft.Content)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to render preview")
		return nil, blogs.ErrRenderPreview
	}

	return &blogs.PreviewResponse{Draft: *draft, HTML: html}, nil
}
