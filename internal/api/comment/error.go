package comments

import (
	"net/http"

	"DevBlogFrontend/pkg/response"
)

var (
	ErrInvalidCommentData = response.NewError(http.StatusBadRequest, "invalid comment data")
	ErrBlogIDRequired     = response.NewError(http.StatusBadRequest, "blog id is required")
	ErrBlogNotFound       = response.NewError(http.StatusNotFound, "blog not found")
)
