package categories

import (
	"net/http"

	"BlogPublisher/pkg/response"
)

var (
	ErrCategoryNotFound  = response.NewError(http.StatusNotFound, "category not found")
	ErrCategoryNameTaken = response.NewError(http.StatusConflict, "category name already exists")
	ErrCreateCategory    = response.NewError(http.StatusInternalServerError, "failed to create category")
	ErrUpdateCategory    = response.NewError(http.StatusInternalServerError, "failed to update category")
	ErrDeleteCategory    = response.NewError(http.StatusInternalServerError, "failed to delete category")
)
