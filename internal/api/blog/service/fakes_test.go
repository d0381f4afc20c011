package blogService

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"BlogPublisher/internal/api/blog"
	blogRepository "BlogPublisher/internal/api/blog/repository"
	"BlogPublisher/internal/api/comment"
	"BlogPublisher/internal/api/like"
	"BlogPublisher/internal/entity"
	"BlogPublisher/pkg/validate"
	"github.com/sirupsen/logrus"
)

type fakeUtils struct {
	mu  sync.Mutex
	seq int
}

func (u *fakeUtils) NewULIDFromTimestamp(time.Time) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.seq++
	return "blog-" + strconv.Itoa(u.seq), nil
}

// Now advances one second per call so created_at ordering is deterministic.
func (u *fakeUtils) Now() time.Time {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.seq++
	return time.Date(2026, 5, 6, 7, 0, 0, 0, time.UTC).Add(time.Duration(u.seq) * time.Second)
}

type store struct {
	mu         sync.Mutex
	blogs      map[string]*entity.Blog
	links      map[string][]string
	categories map[string]entity.Category
	writeErr   error
}

func newStore() *store {
	return &store{
		blogs: map[string]*entity.Blog{},
		links: map[string][]string{},
		categories: map[string]entity.Category{
			"c1": {ID: "c1", Name: "Tech", IsActive: true},
			"c2": {ID: "c2", Name: "Travel", IsActive: true},
			"c3": {ID: "c3", Name: "Gone", Deletion: &entity.DeletionRecord{}},
		},
	}
}

type fakeRepo struct{ s *store }

func (r fakeRepo) NewClient(bool) (blogRepository.Client, error) {
	return blogRepository.Client{
		Blogs:      fakeBlogs{r.s},
		Categories: fakeCategories{r.s},
		Commit:     func() error { return nil },
		Rollback:   func() error { return nil },
	}, nil
}

type fakeBlogs struct{ s *store }

func (f fakeBlogs) CreateBlog(_ context.Context, blog entity.Blog) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.writeErr != nil {
		return f.s.writeErr
	}
	blog.AuthorName = "name-" + blog.AuthorID
	blog.AuthorEmail = blog.AuthorID + "@example.com"
	f.s.blogs[blog.ID] = &blog
	return nil
}

func (f fakeBlogs) GetBlogByID(_ context.Context, id string) (entity.Blog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.blogs[id]
	if !ok {
		return entity.Blog{}, blogs.ErrBlogNotFound
	}
	return *b, nil
}

func (f fakeBlogs) GetBlogBySlug(_ context.Context, slug string) (entity.Blog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, b := range f.s.blogs {
		if b.Slug == slug && !b.IsDeleted() {
			return *b, nil
		}
	}
	return entity.Blog{}, blogs.ErrBlogNotFound
}

func (f fakeBlogs) ListBlogs(_ context.Context, filter entity.BlogFilter) ([]entity.Blog, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	term := strings.ToLower(filter.SearchTerm)
	var matched []entity.Blog
	for _, b := range f.s.blogs {
		if !b.VisibleTo(filter.ViewerID) {
			continue
		}
		if filter.AuthorID != "" && b.AuthorID != filter.AuthorID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(b.Title+" "+b.Content+" "+b.Summary), term) {
			continue
		}
		if len(filter.CategoryIDs) > 0 && !f.linked(b.ID, filter.CategoryIDs) {
			continue
		}
		matched = append(matched, *b)
	}

	sort.Slice(matched, func(i, j int) bool {
		switch filter.SortBy {
		case entity.SortPopular, entity.SortMostViewed:
			if matched[i].ViewCount != matched[j].ViewCount {
				return matched[i].ViewCount > matched[j].ViewCount
			}
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if filter.Offset >= total {
		return []entity.Blog{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (f fakeBlogs) linked(blogID string, categoryIDs []string) bool {
	for _, have := range f.s.links[blogID] {
		for _, want := range categoryIDs {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (f fakeBlogs) UpdateBlog(_ context.Context, blog entity.Blog) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.blogs[blog.ID]
	if !ok || b.IsDeleted() {
		return blogs.ErrBlogNotFound
	}
	*b = blog
	return nil
}

func (f fakeBlogs) SetPublished(_ context.Context, id string, published bool, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.blogs[id]
	if !ok || b.IsDeleted() {
		return blogs.ErrBlogNotFound
	}
	b.IsPublished = published
	if published && b.PublishedAt == nil {
		b.PublishedAt = &at
	}
	b.UpdatedAt = &at
	return nil
}

func (f fakeBlogs) SoftDeleteBlog(_ context.Context, id string, deletion entity.DeletionRecord) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.blogs[id]
	if !ok || b.IsDeleted() {
		return blogs.ErrBlogNotFound
	}
	b.Deletion = &deletion
	return nil
}

func (f fakeBlogs) RestoreBlog(_ context.Context, id, slug string, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.blogs[id]
	if !ok || !b.IsDeleted() {
		return blogs.ErrBlogNotFound
	}
	b.Deletion = nil
	b.Slug = slug
	b.UpdatedAt = &at
	return nil
}

func (f fakeBlogs) IncrementViewCount(_ context.Context, id string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.blogs[id]
	if !ok || b.IsDeleted() || !b.IsPublished {
		return false, nil
	}
	b.ViewCount++
	return true, nil
}

func (f fakeBlogs) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, b := range f.s.blogs {
		if b.Slug == slug && !b.IsDeleted() && b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeCategories struct{ s *store }

func (f fakeCategories) ResolveActiveCategories(_ context.Context, ids []string) ([]entity.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []entity.Category{}
	for _, id := range ids {
		if c, ok := f.s.categories[id]; ok && !c.IsDeleted() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f fakeCategories) ReplaceBlogCategories(_ context.Context, blogID string, categoryIDs []string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.links[blogID] = append([]string(nil), categoryIDs...)
	return nil
}

func (f fakeCategories) GetCategoriesForBlogs(_ context.Context, blogIDs []string) (map[string][]entity.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := map[string][]entity.Category{}
	for _, id := range blogIDs {
		for _, categoryID := range f.s.links[id] {
			out[id] = append(out[id], f.s.categories[categoryID])
		}
	}
	return out, nil
}

type fakeLikes struct {
	liked map[string]bool
}

func (f *fakeLikes) ToggleLike(context.Context, string, string) (*likes.ToggleLikeResponse, error) {
	return &likes.ToggleLikeResponse{}, nil
}

func (f *fakeLikes) IsLiked(_ context.Context, blogID, userID string) (bool, error) {
	return f.liked[blogID+"|"+userID], nil
}

func (f *fakeLikes) CountLikes(context.Context, string) (int, error) { return 0, nil }

func (f *fakeLikes) ListLikes(_ context.Context, blogID, _ string) ([]likes.LikeResponse, error) {
	return []likes.LikeResponse{{ID: "like-1", BlogID: blogID}}, nil
}

func (f *fakeLikes) LikedBlogIDs(_ context.Context, userID string, blogIDs []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, id := range blogIDs {
		if f.liked[id+"|"+userID] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeComments struct{}

func (fakeComments) CreateComment(context.Context, string, string, comments.CommentRequest) (*comments.CommentResponse, error) {
	return &comments.CommentResponse{}, nil
}

func (fakeComments) UpdateComment(context.Context, string, string, comments.CommentRequest) (*comments.CommentResponse, error) {
	return &comments.CommentResponse{}, nil
}

func (fakeComments) DeleteComment(context.Context, string, string) error { return nil }

func (fakeComments) ListComments(context.Context, string, string) ([]comments.CommentResponse, error) {
	return []comments.CommentResponse{}, nil
}

func (fakeComments) ListCommentsForAuthor(_ context.Context, blogID, _ string) ([]comments.CommentResponse, error) {
	return []comments.CommentResponse{{ID: "comment-1", BlogID: blogID}}, nil
}

func (fakeComments) CountComments(context.Context, string) (int, error) { return 0, nil }

type fakeS3 struct {
	uploaded []string
	deleted  []string
}

func (f *fakeS3) UploadFile(_ context.Context, data []byte, fileName string, _ string) (string, error) {
	f.uploaded = append(f.uploaded, fileName)
	return "https://bucket.s3.local/blog-images/" + fileName, nil
}

func (f *fakeS3) DeleteFile(_ context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakeS3) OwnsURL(fileURL string) bool {
	return strings.HasPrefix(fileURL, "https://bucket.s3.local/")
}

type fakeRenderer struct{}

func (fakeRenderer) Markdown(content string) (string, error) {
	return "<p>" + content + "</p>", nil
}

type harness struct {
	svc   IBlogsService
	store *store
	likes *fakeLikes
	s3    *fakeS3
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	h := &harness{
		store: newStore(),
		likes: &fakeLikes{liked: map[string]bool{}},
		s3:    &fakeS3{},
	}
	h.svc = NewBlogsService(log, fakeRepo{h.store}, h.likes, fakeComments{}, h.s3, fakeRenderer{}, validate.New(), &fakeUtils{})
	return h
}

func validRequest(title string, published bool) blogs.CreateBlogRequest {
	return blogs.CreateBlogRequest{
		Title:       title,
		Content:     "Some content that is long enough",
		CategoryIDs: []string{"c1"},
		IsPublished: published,
	}
}
