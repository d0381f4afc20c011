//go:build integration

package likeRepository

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

func newTestClient(t *testing.T) (Client, string, string) {
	t.Helper()
	db := postgrestest.Open(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := New(db, logger).NewClient(false)
	require.NoError(t, err)

	author := postgrestest.SeedUser(t, db, "Author")
	blogID := postgrestest.SeedBlog(t, db, author, true, time.Now().UTC())
	return client, author, blogID
}

func TestAdjustLikeCountFloorsAtZero(t *testing.T) {
	client, _, blogID := newTestClient(t)
	ctx := context.Background()

	count, err := client.Blogs.AdjustLikeCount(ctx, blogID, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for want := 1; want <= 2; want++ {
		count, err = client.Blogs.AdjustLikeCount(ctx, blogID, 1)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	count, err = client.Blogs.AdjustLikeCount(ctx, blogID, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	blog, err := client.Blogs.GetBlog(ctx, blogID)
	require.NoError(t, err)
	assert.Equal(t, 1, blog.LikeCount)
}

func TestAdjustLikeCountUnknownBlog(t *testing.T) {
	client, _, _ := newTestClient(t)

	_, err := client.Blogs.AdjustLikeCount(context.Background(), "missing", 1)
	assert.Error(t, err)
}

func TestCreateLikeIsIdempotent(t *testing.T) {
	client, author, blogID := newTestClient(t)
	ctx := context.Background()

	like := entity.Like{ID: postgrestest.NewID(t), BlogID: blogID, UserID: author, LikedAt: time.Now().UTC()}
	created, err := client.Likes.CreateLike(ctx, like)
	require.NoError(t, err)
	assert.True(t, created)

	like.ID = postgrestest.NewID(t)
	created, err = client.Likes.CreateLike(ctx, like)
	require.NoError(t, err)
	assert.False(t, created)

	count, err := client.Likes.CountLikes(ctx, blogID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	removed, err := client.Likes.DeleteLike(ctx, blogID, author)
	require.NoError(t, err)
	assert.True(t, removed)
}
