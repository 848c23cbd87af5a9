package blogs

import "DevBlogFrontend/internal/entity"

// Thumbnail is either an uploaded file or an existing URL.
type Thumbnail struct {
	URL         string
	Filename    string
	ContentType string
	Data        []byte
}

func (t *Thumbnail) IsFile() bool {
	return t != nil && t.Filename != ""
}

func (t *Thumbnail) Empty() bool {
	return t == nil || (t.URL == "" && !t.IsFile())
}

type CreateBlogRequest struct {
	Title     string     `json:"title" validate:"required"`
	Slug      string     `json:"slug" validate:"required"`
	Content   string     `json:"content" validate:"required"`
	Published bool       `json:"published"`
	Thumbnail *Thumbnail `json:"-"`
	Tags      []string   `json:"tags"`
	SeriesID  string     `json:"series_id"`
}

// UpdateBlogRequest is sparse: nil fields are left untouched server-side.
type UpdateBlogRequest struct {
	Title     *string    `json:"title,omitempty" validate:"omitnil,min=1"`
	Slug      *string    `json:"slug,omitempty" validate:"omitnil,min=1"`
	Content   *string    `json:"content,omitempty" validate:"omitnil,min=1"`
	Published *bool      `json:"published,omitempty"`
	Thumbnail *Thumbnail `json:"-"`
	Tags      []string   `json:"tags,omitempty"`
	SeriesID  *string    `json:"series_id,omitempty"`
}

type PreviewRequest struct {
	Title     string   `json:"title" validate:"required"`
	Slug      string   `json:"slug"`
	Content   string   `json:"content" validate:"required"`
	Thumbnail string   `json:"thumbnail"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
	SeriesID  string   `json:"series_id"`
}

type PreviewResponse struct {
	Draft entity.BlogDraft `json:"draft"`
	HTML  string           `json:"html"`
}

type BlogListResponse struct {
	Blogs []entity.Blog `json:"blogs"`
	Total int           `json:"total"`
}

type BlogDetailResponse struct {
	Blog     entity.Blog      `json:"blog"`
	Comments []entity.Comment `json:"comments"`
}

type TogglePublishRequest struct {
	Published *bool `json:"published"`
}
