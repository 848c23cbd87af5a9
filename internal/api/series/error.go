package series

import (
	"net/http"

	"DevBlogFrontend/pkg/response"
)

var (
	ErrSeriesNotFound     = response.NewError(http.StatusNotFound, "series not found")
	ErrInvalidSeriesData  = response.NewError(http.StatusBadRequest, "invalid series data")
	ErrSeriesIDRequired   = response.NewError(http.StatusBadRequest, "series id is required")
	ErrEmptySeriesPayload = response.NewError(http.StatusBadGateway, "backend returned no series")
)
