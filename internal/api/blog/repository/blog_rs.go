package blogRepository

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	blogs "DevBlogFrontend/internal/api/blog"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/entity"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/response"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// BlogAPI is the backend's wire shape. Older responses carry "id" instead
// of "_id".
type BlogAPI struct {
	MongoID     string              `json:"_id"`
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Slug        string              `json:"slug"`
	Content     string              `json:"content"`
	Thumbnail   string              `json:"thumbnail"`
	Published   bool                `json:"published"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Tags        []string            `json:"tags"`
	SeriesID    *string             `json:"series_id"`
	Likes       int                 `json:"likes"`
	ViewCount   *int                `json:"view_count"`
	UserDetails *entity.UserDetails `json:"user_details"`
	Liked       bool                `json:"liked"`
}

type BlogResponseDetail struct {
	Data    BlogAPI `json:"data"`
	Success bool    `json:"success"`
	Message string  `json:"message"`
}

type BlogResponseList struct {
	Data  []BlogAPI `json:"data"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

func (b BlogAPI) toEntity() entity.Blog {
	id := b.MongoID
	if id == "" {
		id = b.ID
	}

	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}

	blog := entity.Blog{
		ID:          id,
		Title:       b.Title,
		Slug:        b.Slug,
		Content:     b.Content,
		Thumbnail:   b.Thumbnail,
		Published:   b.Published,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		Tags:        tags,
		Likes:       b.Likes,
		ViewCount:   b.ViewCount,
		UserDetails: b.UserDetails,
		Liked:       b.Liked,
	}
	if b.SeriesID != nil {
		blog.SeriesID = *b.SeriesID
	}
	return blog
}

func toEntities(list []BlogAPI) []entity.Blog {
	out := make([]entity.Blog, 0, len(list))
	for _, b := range list {
		out = append(out, b.toEntity())
	}
	return out
}

func (r *repository) CreateBlog(ctx context.Context, req blogs.CreateBlogRequest) (entity.Blog, error) {
	form := client.NewMultipart().
		Add(fieldTitle, req.Title).
		Add(fieldSlug, req.Slug).
		Add(fieldContent, req.Content).
		Add(fieldPublished, strconv.FormatBool(req.Published))

	addThumbnail(form, req.Thumbnail)

	for _, tag := range req.Tags {
		form.Add(fieldTags, tag)
	}

	if req.SeriesID != "" {
		form.Add(fieldSeriesID, req.SeriesID)
	}

	var resp BlogResponseDetail
	if err := r.api.Post(ctx, pathBlogs, client.Options{Form: form}, &resp); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"slug":       req.Slug,
			"error":      err.Error(),
		}).Error("API error when creating blog")
		return entity.Blog{}, err
	}

	return resp.Data.toEntity(), nil
}

// UpdateBlog sends only the fields set on req. An empty series id is sent
// explicitly so the backend detaches the blog from its series.
func (r *repository) UpdateBlog(ctx context.Context, id string, req blogs.UpdateBlogRequest) (entity.Blog, error) {
	form := client.NewMultipart()

	if req.Title != nil && *req.Title != "" {
		form.Add(fieldTitle, *req.Title)
	}
	if req.Slug != nil && *req.Slug != "" {
		form.Add(fieldSlug, *req.Slug)
	}
	if req.Content != nil && *req.Content != "" {
		form.Add(fieldContent, *req.Content)
	}
	if req.Published != nil {
		form.Add(fieldPublished, strconv.FormatBool(*req.Published))
	}

	addThumbnail(form, req.Thumbnail)

	for _, tag := range req.Tags {
		form.Add(fieldTags, tag)
	}

	if req.SeriesID != nil {
		form.Add(fieldSeriesID, *req.SeriesID)
	}

	var resp BlogResponseDetail
	if err := r.api.Put(ctx, fmt.Sprintf(pathBlog, url.PathEscape(id)), client.Options{Form: form}, &resp); err != nil {
		if response.IsNotFound(err) {
			return entity.Blog{}, blogs.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"id":         id,
			"error":      err.Error(),
		}).Error("API error when updating blog")
		return entity.Blog{}, err
	}

	return resp.Data.toEntity(), nil
}

func (r *repository) GetYourBlogs(ctx context.Context, seriesID string) ([]entity.Blog, error) {
	return r.list(ctx, pathYourBlogs, seriesID)
}

func (r *repository) GetAllBlogs(ctx context.Context, seriesID string) ([]entity.Blog, error) {
	return r.list(ctx, pathBlogs, seriesID)
}

func (r *repository) list(ctx context.Context, path, seriesID string) ([]entity.Blog, error) {
	opts := client.Options{}
	if seriesID != "" {
		opts.Query = url.Values{querySeriesID: {seriesID}}
	}

	var resp BlogResponseList
	if err := r.api.Get(ctx, path, opts, &resp); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"path":       path,
			"series_id":  seriesID,
			"error":      err.Error(),
		}).Error("API error when listing blogs")
		return nil, err
	}

	return toEntities(resp.Data), nil
}

func (r *repository) GetBlog(ctx context.Context, idOrSlug string, kind LookupKind) (entity.Blog, error) {
	path := fmt.Sprintf(pathBlog, url.PathEscape(idOrSlug))
	if kind == ByID {
		path = fmt.Sprintf(pathYourBlog, url.PathEscape(idOrSlug))
	}

	var resp BlogResponseDetail
	if err := r.api.Get(ctx, path, client.Options{}, &resp); err != nil {
		if response.IsNotFound(err) {
			return entity.Blog{}, blogs.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"path":       path,
			"error":      err.Error(),
		}).Error("API error when fetching blog")
		return entity.Blog{}, err
	}

	return resp.Data.toEntity(), nil
}

func (r *repository) DeleteBlog(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, fmt.Sprintf(pathBlog, url.PathEscape(id)), client.Options{}, nil); err != nil {
		if response.IsNotFound(err) {
			return blogs.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"id":         id,
			"error":      err.Error(),
		}).Error("API error when deleting blog")
		return err
	}
	return nil
}

func (r *repository) LikeBlog(ctx context.Context, id string) (entity.Blog, error) {
	var resp BlogResponseDetail
	if err := r.api.Post(ctx, fmt.Sprintf(pathLikeBlog, url.PathEscape(id)), client.Options{}, &resp); err != nil {
		if response.IsNotFound(err) {
			return entity.Blog{}, blogs.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"id":         id,
			"error":      err.Error(),
		}).Error("API error when liking blog")
		return entity.Blog{}, err
	}
	return resp.Data.toEntity(), nil
}

func addThumbnail(form *client.Multipart, t *blogs.Thumbnail) {
	switch {
	case t.IsFile():
		form.AddFile(fieldThumbnail, client.File{
			Filename:    t.Filename,
			ContentType: t.ContentType,
			Data:        t.Data,
		})
	case t != nil && t.URL != "":
		form.Add(fieldThumbnail, t.URL)
	}
}
