package blogRepository

import (
	"testing"

	"BlogPublisher/internal/entity"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestOrderBlogs(t *testing.T) {
	tests := []struct {
		name   string
		sortBy entity.BlogSortBy
		want   string
	}{
		{"latest", entity.SortLatest, "b.created_at DESC, b.id DESC"},
		{"most liked", entity.SortMostLiked, "b.like_count DESC, b.created_at DESC, b.id DESC"},
		{"most discussed", entity.SortMostDiscussed, "comment_count DESC, b.created_at DESC, b.id DESC"},
		{"recent", entity.SortRecent, "COALESCE(b.published_at, b.created_at) DESC, b.id DESC"},
		{"popular", entity.SortPopular, "b.view_count DESC, b.like_count DESC, b.id DESC"},
		{"unknown falls back to latest", entity.BlogSortBy("random"), "b.created_at DESC, b.id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "\n\t\tORDER BY "+tt.want, orderBlogs(tt.sortBy))
		})
	}
}

func TestLikeEscaper(t *testing.T) {
	assert.Equal(t, `100\% \_done\\`, likeEscaper.Replace(`100% _done\`))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: uniqueViolation}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(assert.AnError))
}

func TestMakeBlogDeletionRecord(t *testing.T) {
	r := &blogsRepository{}

	active := r.makeBlog(BlogDB{})
	assert.False(t, active.IsDeleted())
	assert.Nil(t, active.PublishedAt)

	deleted := r.makeBlog(BlogDB{IsDeleted: true})
	assert.True(t, deleted.IsDeleted())
}
