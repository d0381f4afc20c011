package categories

import (
	"strings"
	"time"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"is_active"`
}

func (r CategoryRequest) Normalize() CategoryRequest {
	return CategoryRequest{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		IsActive:    r.IsActive,
	}
}

func (r CategoryRequest) Active() bool {
	return r.IsActive == nil || *r.IsActive
}

type CategoryResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   string     `json:"created_by"`
	UpdatedAt   *time.Time `json:"updated_at"`
	UpdatedBy   string     `json:"updated_by"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type PagedCategoryResponse struct {
	TotalCount int                `json:"total_count"`
	Items      []CategoryResponse `json:"items"`
}
