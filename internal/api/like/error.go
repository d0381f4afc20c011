package likes

import (
	"net/http"

	"BlogPublisher/pkg/response"
)

var (
	ErrBlogNotFound = response.NewError(http.StatusNotFound, "blog not found")
	ErrToggleLike   = response.NewError(http.StatusInternalServerError, "failed to toggle like")
)
