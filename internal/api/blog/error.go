package blogs

import (
	"net/http"

	"BlogPublisher/pkg/response"
)

var (
	ErrBlogNotFound    = response.NewError(http.StatusNotFound, "blog not found")
	ErrCreateBlog      = response.NewError(http.StatusInternalServerError, "failed to create blog")
	ErrUpdateBlog      = response.NewError(http.StatusInternalServerError, "failed to update blog")
	ErrDeleteBlog      = response.NewError(http.StatusInternalServerError, "failed to delete blog")
	ErrInvalidFileType = response.NewError(http.StatusBadRequest, "invalid file type")
	ErrFileTooLarge    = response.NewError(http.StatusRequestEntityTooLarge, "file too large")
	ErrEmptyFile       = response.NewError(http.StatusBadRequest, "no file provided")
	ErrFailedToUpload  = response.NewError(http.StatusBadGateway, "failed to upload file")
	ErrSlugUnavailable = response.NewError(http.StatusConflict, "slug unavailable")
)
