package comments

import (
	"net/http"

	"BlogPublisher/pkg/response"
)

var (
	ErrBlogNotFound    = response.NewError(http.StatusNotFound, "blog not found")
	ErrCommentNotFound = response.NewError(http.StatusNotFound, "comment not found")
	ErrCreateComment   = response.NewError(http.StatusInternalServerError, "failed to create comment")
	ErrUpdateComment   = response.NewError(http.StatusInternalServerError, "failed to update comment")
	ErrDeleteComment   = response.NewError(http.StatusInternalServerError, "failed to delete comment")
)
