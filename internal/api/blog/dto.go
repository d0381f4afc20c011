package blogs

import (
	"strings"
	"time"

	comments "BlogPublisher/internal/api/comment"
	likes "BlogPublisher/internal/api/like"
)

type CreateBlogRequest struct {
	Title            string   `json:"title" validate:"required,min=3,max=200"`
	Content          string   `json:"content" validate:"required,min=10,max=10000"`
	Summary          string   `json:"summary" validate:"max=300"`
	FeaturedImageURL string   `json:"featured_image_url" validate:"omitempty,url,max=500"`
	MetaDescription  string   `json:"meta_description" validate:"max=160"`
	CategoryIDs      []string `json:"category_ids" validate:"required,min=1"`
	IsPublished      bool     `json:"is_published"`
}

type UpdateBlogRequest CreateBlogRequest

// Normalize trims every free-text field and drops blank category ids.
func (r CreateBlogRequest) Normalize() CreateBlogRequest {
	out := CreateBlogRequest{
		Title:            strings.TrimSpace(r.Title),
		Content:          strings.TrimSpace(r.Content),
		Summary:          strings.TrimSpace(r.Summary),
		FeaturedImageURL: strings.TrimSpace(r.FeaturedImageURL),
		MetaDescription:  strings.TrimSpace(r.MetaDescription),
		IsPublished:      r.IsPublished,
	}

	seen := make(map[string]struct{}, len(r.CategoryIDs))
	for _, id := range r.CategoryIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out.CategoryIDs = append(out.CategoryIDs, id)
	}

	return out
}

type ListBlogsQuery struct {
	Page        int
	Limit       int
	SortBy      string
	CategoryIDs []string
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type BlogResponse struct {
	ID                   string                     `json:"id"`
	Title                string                     `json:"title"`
	Content              string                     `json:"content"`
	ContentHTML          string                     `json:"content_html"`
	Summary              string                     `json:"summary"`
	FeaturedImageURL     string                     `json:"featured_image_url"`
	MetaDescription      string                     `json:"meta_description"`
	Slug                 string                     `json:"slug"`
	AuthorID             string                     `json:"author_id"`
	AuthorName           string                     `json:"author_name"`
	AuthorEmail          string                     `json:"author_email"`
	IsPublished          bool                       `json:"is_published"`
	IsOwner              bool                       `json:"is_owner"`
	IsLikedByCurrentUser bool                       `json:"is_liked_by_current_user"`
	CreatedAt            time.Time                  `json:"created_at"`
	UpdatedAt            *time.Time                 `json:"updated_at"`
	PublishedAt          *time.Time                 `json:"published_at"`
	ViewCount            int                        `json:"view_count"`
	LikeCount            int                        `json:"like_count"`
	CommentCount         int                        `json:"comment_count"`
	EstimatedReadTime    int                        `json:"estimated_read_time"`
	Categories           []CategoryResponse         `json:"categories"`
	CategoryIDs          []string                   `json:"category_ids"`
	Comments             []comments.CommentResponse `json:"comments"`
	Likes                []likes.LikeResponse       `json:"likes"`
}

type BlogListItemResponse struct {
	ID                   string             `json:"id"`
	Title                string             `json:"title"`
	Summary              string             `json:"summary"`
	FeaturedImageURL     string             `json:"featured_image_url"`
	Slug                 string             `json:"slug"`
	AuthorID             string             `json:"author_id"`
	AuthorName           string             `json:"author_name"`
	IsPublished          bool               `json:"is_published"`
	IsLikedByCurrentUser bool               `json:"is_liked_by_current_user"`
	CreatedAt            time.Time          `json:"created_at"`
	PublishedAt          *time.Time         `json:"published_at"`
	ViewCount            int                `json:"view_count"`
	LikeCount            int                `json:"like_count"`
	CommentCount         int                `json:"comment_count"`
	EstimatedReadTime    int                `json:"estimated_read_time"`
	Categories           []CategoryResponse `json:"categories"`
}

type BlogListResponse struct {
	Blogs []BlogListItemResponse `json:"blogs"`
	Total int                    `json:"total"`
}

type ImageUploadResponse struct {
	URL string `json:"url"`
}
