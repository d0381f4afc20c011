package comments

import (
	"strings"
	"time"
)

type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

func (r CommentRequest) Normalize() CommentRequest {
	return CommentRequest{Content: strings.TrimSpace(r.Content)}
}

type CommentResponse struct {
	ID        string     `json:"id"`
	BlogID    string     `json:"blog_id"`
	BlogTitle string     `json:"blog_title"`
	UserID    string     `json:"user_id"`
	UserName  string     `json:"user_name"`
	UserEmail string     `json:"user_email"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	IsOwner   bool       `json:"is_owner"`
	CanEdit   bool       `json:"can_edit"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

type CommentCountResponse struct {
	Count int `json:"count"`
}
