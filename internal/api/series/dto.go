package series

import "DevBlogFrontend/internal/entity"

type CreateSeriesRequest struct {
	Title       string `json:"title" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

// UpdateSeriesRequest is sparse: nil fields are not sent.
type UpdateSeriesRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitnil,min=1"`
	Slug        *string `json:"slug,omitempty" validate:"omitnil,min=1"`
	Description *string `json:"description,omitempty"`
	Published   *bool   `json:"published,omitempty"`
}

type PublishSeriesRequest struct {
	Published *bool `json:"published" validate:"required"`
}

type SeriesListResponse struct {
	Series []entity.Series `json:"series"`
	Total  int             `json:"total"`
}
