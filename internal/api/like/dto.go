package likes

import "time"

type LikeResponse struct {
	ID        string    `json:"id"`
	BlogID    string    `json:"blog_id"`
	BlogTitle string    `json:"blog_title"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	LikedAt   time.Time `json:"liked_at"`
}

type ToggleLikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

type LikeStatusResponse struct {
	Liked bool `json:"liked"`
}

type LikeCountResponse struct {
	Count int `json:"count"`
}

type LikeListResponse struct {
	Likes []LikeResponse `json:"likes"`
}
