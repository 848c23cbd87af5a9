package blogs

import "DevBlogFrontend/pkg/response"

var (
	ErrBlogNotFound       = response.NewError(404, "blog not found")
	ErrPreviewNotFound    = response.NewError(404, "no preview draft saved")
	ErrInvalidBlogData    = response.NewError(400, "invalid blog data")
	ErrThumbnailRequired  = response.NewError(400, "please upload a thumbnail image")
	ErrThumbnailTooLarge  = response.NewError(400, "thumbnail too large, maximum size is 5MB")
	ErrInvalidPreviewData = response.NewError(400, "please fill in title and content to preview")
	ErrRenderPreview      = response.NewError(500, "failed to render preview")
)
