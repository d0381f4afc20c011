//go:build integration

package blogRepository

import (
	"context"
	"io"
	"testing"
	"time"

	"BlogPublisher/database/postgres/postgrestest"
	"BlogPublisher/internal/entity"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blogFixture struct {
	client    Client
	author    string
	reader    string
	published string
	draft     string
	deleted   string
	category  string
}

func setupBlogFixture(t *testing.T) blogFixture {
	t.Helper()
	db := postgrestest.Open(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := New(db, logger).NewClient(false)
	require.NoError(t, err)

	f := blogFixture{
		client:   client,
		author:   postgrestest.SeedUser(t, db, "Author"),
		reader:   postgrestest.SeedUser(t, db, "Reader"),
		category: postgrestest.SeedCategory(t, db, "Tech"),
	}

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	f.published = postgrestest.NewID(t)
	require.NoError(t, client.Blogs.CreateBlog(context.Background(), entity.Blog{
		ID:                f.published,
		Title:             "Published post",
		Content:           "content",
		AuthorID:          f.author,
		IsPublished:       true,
		CreatedAt:         base,
		PublishedAt:       &base,
		Slug:              "published-" + f.published,
		EstimatedReadTime: 1,
	}))
	f.draft = postgrestest.SeedBlog(t, db, f.author, false, base.Add(time.Hour))
	f.deleted = postgrestest.SeedBlog(t, db, f.author, true, base.Add(2*time.Hour))

	require.NoError(t, client.Categories.ReplaceBlogCategories(context.Background(), f.published, []string{f.category}))
	require.NoError(t, client.Blogs.SoftDeleteBlog(context.Background(), f.deleted, entity.DeletionRecord{At: base, By: f.author}))

	postgrestest.SeedComment(t, db, f.published, f.reader, false)
	postgrestest.SeedComment(t, db, f.published, f.reader, false)
	postgrestest.SeedComment(t, db, f.draft, f.reader, true)

	return f
}

func listIDs(t *testing.T, client Client, filter entity.BlogFilter) ([]string, int) {
	t.Helper()
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	list, total, err := client.Blogs.ListBlogs(context.Background(), filter)
	require.NoError(t, err)

	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ID)
	}
	return ids, total
}

func TestListBlogsVisibility(t *testing.T) {
	f := setupBlogFixture(t)

	ids, total := listIDs(t, f.client, entity.BlogFilter{AuthorID: f.author, ViewerID: f.reader})
	assert.Equal(t, []string{f.published}, ids)
	assert.Equal(t, 1, total)

	ids, _ = listIDs(t, f.client, entity.BlogFilter{AuthorID: f.author})
	assert.Equal(t, []string{f.published}, ids)

	ids, total = listIDs(t, f.client, entity.BlogFilter{AuthorID: f.author, ViewerID: f.author})
	assert.Equal(t, []string{f.draft, f.published}, ids)
	assert.Equal(t, 2, total)
}

func TestListBlogsCategoryFilter(t *testing.T) {
	f := setupBlogFixture(t)

	ids, total := listIDs(t, f.client, entity.BlogFilter{
		AuthorID:    f.author,
		ViewerID:    f.author,
		CategoryIDs: []string{f.category},
	})
	assert.Equal(t, []string{f.published}, ids)
	assert.Equal(t, 1, total)

	ids, _ = listIDs(t, f.client, entity.BlogFilter{
		AuthorID:    f.author,
		ViewerID:    f.author,
		CategoryIDs: []string{"missing"},
	})
	assert.Empty(t, ids)
}

func TestListBlogsSorting(t *testing.T) {
	f := setupBlogFixture(t)

	ids, _ := listIDs(t, f.client, entity.BlogFilter{AuthorID: f.author, ViewerID: f.author, SortBy: entity.SortLatest})
	assert.Equal(t, []string{f.draft, f.published}, ids)

	ids, _ = listIDs(t, f.client, entity.BlogFilter{AuthorID: f.author, ViewerID: f.author, SortBy: entity.SortMostDiscussed})
	assert.Equal(t, []string{f.published, f.draft}, ids)

	list, _, err := f.client.Blogs.ListBlogs(context.Background(), entity.BlogFilter{
		AuthorID: f.author,
		ViewerID: f.author,
		SortBy:   entity.SortMostDiscussed,
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].CommentCount)
	assert.Equal(t, 0, list[1].CommentCount)
}

func TestListBlogsSearch(t *testing.T) {
	f := setupBlogFixture(t)

	ids, _ := listIDs(t, f.client, entity.BlogFilter{AuthorID: f.author, ViewerID: f.author, SearchTerm: "published POST"})
	assert.Equal(t, []string{f.published}, ids)

	ids, _ = listIDs(t, f.client, entity.BlogFilter{AuthorID: f.author, ViewerID: f.author, SearchTerm: "100%"})
	assert.Empty(t, ids)
}

func TestSetPublishedKeepsFirstPublishTime(t *testing.T) {
	f := setupBlogFixture(t)
	ctx := context.Background()

	first := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, f.client.Blogs.SetPublished(ctx, f.draft, true, first))
	require.NoError(t, f.client.Blogs.SetPublished(ctx, f.draft, false, first.Add(time.Hour)))

	blog, err := f.client.Blogs.GetBlogByID(ctx, f.draft)
	require.NoError(t, err)
	assert.False(t, blog.IsPublished)
	require.NotNil(t, blog.PublishedAt)
	assert.True(t, first.Equal(*blog.PublishedAt))

	require.NoError(t, f.client.Blogs.SetPublished(ctx, f.draft, true, first.Add(2*time.Hour)))

	blog, err = f.client.Blogs.GetBlogByID(ctx, f.draft)
	require.NoError(t, err)
	assert.True(t, blog.IsPublished)
	assert.True(t, first.Equal(*blog.PublishedAt))
}

func TestDeletedBlogIsHidden(t *testing.T) {
	f := setupBlogFixture(t)
	ctx := context.Background()

	blog, err := f.client.Blogs.GetBlogByID(ctx, f.deleted)
	require.NoError(t, err)
	require.NotNil(t, blog.Deletion)
	assert.Equal(t, f.author, blog.Deletion.By)

	_, err = f.client.Blogs.GetBlogBySlug(ctx, blog.Slug)
	assert.Error(t, err)

	counted, err := f.client.Blogs.IncrementViewCount(ctx, f.deleted)
	require.NoError(t, err)
	assert.False(t, counted)

	counted, err = f.client.Blogs.IncrementViewCount(ctx, f.draft)
	require.NoError(t, err)
	assert.False(t, counted)
}
