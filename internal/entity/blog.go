package entity

import "time"

type Blog struct {
	ID                string
	Title             string
	Content           string
	Summary           string
	FeaturedImageURL  string
	MetaDescription   string
	AuthorID          string
	AuthorName        string
	AuthorEmail       string
	Categories        []Category
	IsPublished       bool
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	PublishedAt       *time.Time
	Deletion          *DeletionRecord
	Slug              string
	ViewCount         int
	LikeCount         int
	CommentCount      int
	EstimatedReadTime int
	IsLikedByViewer   bool
}

func (b Blog) IsDeleted() bool {
	return b.Deletion != nil
}

func (b Blog) IsOwnedBy(userID string) bool {
	return userID != "" && b.AuthorID == userID
}

// VisibleTo reports whether the viewer may read the blog at all.
func (b Blog) VisibleTo(viewerID string) bool {
	if b.IsDeleted() {
		return false
	}
	return b.IsPublished || b.IsOwnedBy(viewerID)
}

func (b Blog) CategoryIDs() []string {
	ids := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

type BlogSortBy string

const (
	SortLatest        BlogSortBy = "latest"
	SortMostLiked     BlogSortBy = "most_liked"
	SortMostViewed    BlogSortBy = "most_viewed"
	SortMostDiscussed BlogSortBy = "most_discussed"

	// Used by the recent and popular listings only; never parsed from a request.
	SortRecent  BlogSortBy = "recent"
	SortPopular BlogSortBy = "popular"
)

func ParseBlogSortBy(s string) BlogSortBy {
	switch BlogSortBy(s) {
	case SortMostLiked, SortMostViewed, SortMostDiscussed:
		return BlogSortBy(s)
	default:
		return SortLatest
	}
}

// BlogFilter describes a listing request. ViewerID drives the published-or-owner visibility rule.
type BlogFilter struct {
	ViewerID    string
	AuthorID    string
	CategoryIDs []string
	SearchTerm  string
	SortBy      BlogSortBy
	Limit       int
	Offset      int
}
