package likeService

import (
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"BlogPublisher/internal/api/like"
	likeRepository "BlogPublisher/internal/api/like/repository"
	"BlogPublisher/internal/entity"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUtils struct {
	mu  sync.Mutex
	seq int
}

func (u *fakeUtils) NewULIDFromTimestamp(time.Time) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.seq++
	return "like-" + strconv.Itoa(u.seq), nil
}

func (u *fakeUtils) Now() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

type store struct {
	mu       sync.Mutex
	blogs    map[string]*entity.Blog
	likes    map[string]entity.Like
	writeErr error
}

func newStore() *store {
	return &store{
		blogs: map[string]*entity.Blog{},
		likes: map[string]entity.Like{},
	}
}

func likeKey(blogID, userID string) string { return blogID + "|" + userID }

type fakeRepo struct{ s *store }

func (r fakeRepo) NewClient(bool) (likeRepository.Client, error) {
	return likeRepository.Client{
		Blogs:    fakeBlogs{r.s},
		Likes:    fakeLikes{r.s},
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeBlogs struct{ s *store }

func (f fakeBlogs) GetBlogForUpdate(ctx context.Context, id string) (entity.Blog, error) {
	return f.GetBlog(ctx, id)
}

func (f fakeBlogs) GetBlog(_ context.Context, id string) (entity.Blog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.blogs[id]
	if !ok {
		return entity.Blog{}, likes.ErrBlogNotFound
	}
	return *b, nil
}

func (f fakeBlogs) AdjustLikeCount(_ context.Context, id string, delta int) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b := f.s.blogs[id]
	b.LikeCount += delta
	if b.LikeCount < 0 {
		b.LikeCount = 0
	}
	return b.LikeCount, nil
}

type fakeLikes struct{ s *store }

func (f fakeLikes) CreateLike(_ context.Context, like entity.Like) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	key := likeKey(like.BlogID, like.UserID)
	if _, ok := f.s.likes[key]; ok {
		return false, nil
	}
	like.UserName = "name-" + like.UserID
	f.s.likes[key] = like
	return true, nil
}

func (f fakeLikes) DeleteLike(_ context.Context, blogID, userID string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.writeErr != nil {
		return false, f.s.writeErr
	}
	key := likeKey(blogID, userID)
	if _, ok := f.s.likes[key]; !ok {
		return false, nil
	}
	delete(f.s.likes, key)
	return true, nil
}

func (f fakeLikes) IsLiked(_ context.Context, blogID, userID string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	_, ok := f.s.likes[likeKey(blogID, userID)]
	return ok, nil
}

func (f fakeLikes) CountLikes(_ context.Context, blogID string) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n := 0
	for _, l := range f.s.likes {
		if l.BlogID == blogID {
			n++
		}
	}
	return n, nil
}

func (f fakeLikes) ListLikes(_ context.Context, blogID string) ([]entity.Like, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []entity.Like
	for _, l := range f.s.likes {
		if l.BlogID == blogID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f fakeLikes) LikedBlogIDs(_ context.Context, userID string, blogIDs []string) ([]string, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []string
	for _, id := range blogIDs {
		if _, ok := f.s.likes[likeKey(id, userID)]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func newTestService(s *store) ILikesService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewLikesService(logger, fakeRepo{s}, &fakeUtils{})
}

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	s := newStore()
	s.blogs["b1"] = &entity.Blog{ID: "b1", AuthorID: "author", IsPublished: true, LikeCount: 4}
	svc := newTestService(s)
	ctx := context.Background()

	first, err := svc.ToggleLike(ctx, "b1", "userA")
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, 5, first.LikeCount)

	second, err := svc.ToggleLike(ctx, "b1", "userA")
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, 4, second.LikeCount)

	liked, err := svc.IsLiked(ctx, "b1", "userA")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestToggleLikeCountMatchesLastActions(t *testing.T) {
	s := newStore()
	s.blogs["b1"] = &entity.Blog{ID: "b1", AuthorID: "author", IsPublished: true}
	svc := newTestService(s)
	ctx := context.Background()

	toggles := map[string]int{"u1": 1, "u2": 2, "u3": 3, "u4": 4, "u5": 5}
	expected := 0
	for user, n := range toggles {
		for i := 0; i < n; i++ {
			_, err := svc.ToggleLike(ctx, "b1", user)
			require.NoError(t, err)
		}
		if n%2 == 1 {
			expected++
		}
	}

	assert.Equal(t, expected, s.blogs["b1"].LikeCount)

	count, err := svc.CountLikes(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, expected, count)
}

func TestToggleLikeConcurrentUsers(t *testing.T) {
	s := newStore()
	s.blogs["b1"] = &entity.Blog{ID: "b1", AuthorID: "author", IsPublished: true}
	svc := newTestService(s)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.ToggleLike(context.Background(), "b1", "user"+strconv.Itoa(i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, s.blogs["b1"].LikeCount)
}

func TestToggleLikeRejectsUnavailableBlogs(t *testing.T) {
	s := newStore()
	s.blogs["draft"] = &entity.Blog{ID: "draft", AuthorID: "author"}
	s.blogs["gone"] = &entity.Blog{ID: "gone", AuthorID: "author", IsPublished: true, Deletion: entity.NewDeletionRecord(time.Now(), "author")}
	svc := newTestService(s)

	for _, id := range []string{"draft", "gone", "missing"} {
		_, err := svc.ToggleLike(context.Background(), id, "userA")
		assert.ErrorIs(t, err, likes.ErrBlogNotFound, id)
	}
	assert.Empty(t, s.likes)
}

func TestListLikesOnlyForAuthor(t *testing.T) {
	s := newStore()
	s.blogs["b1"] = &entity.Blog{ID: "b1", AuthorID: "author", IsPublished: true}
	svc := newTestService(s)
	ctx := context.Background()

	_, err := svc.ToggleLike(ctx, "b1", "u1")
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, "b1", "u2")
	require.NoError(t, err)

	list, err := svc.ListLikes(ctx, "b1", "author")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "name-u1", list[0].UserName)

	list, err = svc.ListLikes(ctx, "b1", "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.ListLikes(ctx, "missing", "author")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLikedBlogIDs(t *testing.T) {
	s := newStore()
	s.blogs["b1"] = &entity.Blog{ID: "b1", AuthorID: "author", IsPublished: true}
	s.blogs["b2"] = &entity.Blog{ID: "b2", AuthorID: "author", IsPublished: true}
	svc := newTestService(s)
	ctx := context.Background()

	_, err := svc.ToggleLike(ctx, "b2", "u1")
	require.NoError(t, err)

	liked, err := svc.LikedBlogIDs(ctx, "u1", []string{"b1", "b2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"b2": true}, liked)

	anon, err := svc.LikedBlogIDs(ctx, "", []string{"b1", "b2"})
	require.NoError(t, err)
	assert.Empty(t, anon)
}

func TestToggleLikeKeepsStorageCause(t *testing.T) {
	s := newStore()
	s.blogs["b1"] = &entity.Blog{ID: "b1", AuthorID: "author", IsPublished: true}
	dbErr := errors.New("deadlock detected")
	s.writeErr = dbErr

	_, err := newTestService(s).ToggleLike(context.Background(), "b1", "userA")

	assert.ErrorIs(t, err, likes.ErrToggleLike)
	assert.ErrorIs(t, err, dbErr)
	assert.Empty(t, s.likes)
}
