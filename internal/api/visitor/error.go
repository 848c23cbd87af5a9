package visitor

import "DevBlogFrontend/pkg/response"

var (
	ErrEmptyVisitorID     = response.NewError(502, "backend returned an empty visitor id")
	ErrVisitorUnavailable = response.NewError(503, "visitor id unavailable")
)
