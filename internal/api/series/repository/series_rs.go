package seriesRepository

import (
	"fmt"
	"net/url"
	"time"

	"DevBlogFrontend/internal/api/series"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/entity"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/response"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	pathSeries     = "api/series"
	pathYourSeries = "api/series/your"
	pathOneSeries  = "api/series/%s"
)

type SeriesAPI struct {
	MongoID     string    `json:"_id"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SeriesResponseList struct {
	Data  []SeriesAPI `json:"data"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

type SeriesResponseDetail struct {
	Data    SeriesAPI `json:"data"`
	Success bool      `json:"success"`
	Message string    `json:"message"`
}

func (s SeriesAPI) toEntity() entity.Series {
	id := s.MongoID
	if id == "" {
		id = s.ID
	}
	return entity.Series{
		ID:          id,
		Title:       s.Title,
		Slug:        s.Slug,
		Description: s.Description,
		Published:   s.Published,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Blogs:       []entity.Blog{},
	}
}

// decodeMutation accepts both the {data: ...} envelope and a bare series
// object; create and update responses have been seen in either shape.
func decodeMutation(raw jsoniter.RawMessage) (SeriesAPI, error) {
	var envelope struct {
		Data *SeriesAPI `json:"data"`
	}
	if err := jsoniter.Unmarshal(raw, &envelope); err != nil {
		return SeriesAPI{}, err
	}
	if envelope.Data != nil {
		return *envelope.Data, nil
	}

	var bare SeriesAPI
	if err := jsoniter.Unmarshal(raw, &bare); err != nil {
		return SeriesAPI{}, err
	}
	if bare.MongoID == "" && bare.ID == "" {
		return SeriesAPI{}, series.ErrEmptySeriesPayload
	}
	return bare, nil
}

func (r *repository) GetAllSeries(ctx context.Context) ([]entity.Series, error) {
	return r.list(ctx, pathSeries)
}

func (r *repository) GetYourSeries(ctx context.Context) ([]entity.Series, error) {
	return r.list(ctx, pathYourSeries)
}

func (r *repository) list(ctx context.Context, path string) ([]entity.Series, error) {
	var resp SeriesResponseList
	if err := r.api.Get(ctx, path, client.Options{}, &resp); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"path":       path,
			"error":      err.Error(),
		}).Error("API error when listing series")
		return nil, err
	}

	out := make([]entity.Series, 0, len(resp.Data))
	for _, s := range resp.Data {
		out = append(out, s.toEntity())
	}
	return out, nil
}

func (r *repository) GetSeries(ctx context.Context, idOrSlug string) (entity.Series, error) {
	var resp SeriesResponseDetail
	if err := r.api.Get(ctx, fmt.Sprintf(pathOneSeries, url.PathEscape(idOrSlug)), client.Options{}, &resp); err != nil {
		if response.IsNotFound(err) {
			return entity.Series{}, series.ErrSeriesNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"id_or_slug": idOrSlug,
			"error":      err.Error(),
		}).Error("API error when fetching series")
		return entity.Series{}, err
	}
	return resp.Data.toEntity(), nil
}

func (r *repository) CreateSeries(ctx context.Context, req series.CreateSeriesRequest) (entity.Series, error) {
	var raw jsoniter.RawMessage
	if err := r.api.Post(ctx, pathSeries, client.Options{JSON: req}, &raw); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"slug":       req.Slug,
			"error":      err.Error(),
		}).Error("API error when creating series")
		return entity.Series{}, err
	}

	created, err := decodeMutation(raw)
	if err != nil {
		return entity.Series{}, err
	}
	return created.toEntity(), nil
}

func (r *repository) UpdateSeries(ctx context.Context, id string, req series.UpdateSeriesRequest) (entity.Series, error) {
	var raw jsoniter.RawMessage
	if err := r.api.Put(ctx, fmt.Sprintf(pathOneSeries, url.PathEscape(id)), client.Options{JSON: req}, &raw); err != nil {
		if response.IsNotFound(err) {
			return entity.Series{}, series.ErrSeriesNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"id":         id,
			"error":      err.Error(),
		}).Error("API error when updating series")
		return entity.Series{}, err
	}

	updated, err := decodeMutation(raw)
	if err != nil {
		return entity.Series{}, err
	}
	return updated.toEntity(), nil
}

func (r *repository) DeleteSeries(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, fmt.Sprintf(pathOneSeries, url.PathEscape(id)), client.Options{}, nil); err != nil {
		if response.IsNotFound(err) {
			return series.ErrSeriesNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"id":         id,
			"error":      err.Error(),
		}).Error("API error when deleting series")
		return err
	}
	return nil
}
