package blogHandler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"BlogPublisher/internal/api/blog"
	"BlogPublisher/internal/middleware/middlewaretest"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	lastViewer string
	lastQuery  blogs.ListBlogsQuery
	lastTerm   string
	lastCount  int
	uploaded   string
}

func (s *stubService) CreateBlog(_ context.Context, req blogs.CreateBlogRequest, authorID string) (*blogs.BlogResponse, error) {
	return &blogs.BlogResponse{ID: "b1", Title: req.Title, AuthorID: authorID, IsOwner: true}, nil
}

func (s *stubService) UpdateBlog(_ context.Context, id string, req blogs.UpdateBlogRequest, userID string) (*blogs.BlogResponse, error) {
	if userID != "author" {
		return nil, blogs.ErrBlogNotFound
	}
	return &blogs.BlogResponse{ID: id, Title: req.Title}, nil
}

func (s *stubService) ownerOnly(_ context.Context, _ string, userID string) error {
	if userID != "author" {
		return blogs.ErrBlogNotFound
	}
	return nil
}

func (s *stubService) DeleteBlog(ctx context.Context, id, userID string) error {
	return s.ownerOnly(ctx, id, userID)
}

func (s *stubService) RestoreBlog(ctx context.Context, id, userID string) error {
	return s.ownerOnly(ctx, id, userID)
}

func (s *stubService) PublishBlog(ctx context.Context, id, userID string) error {
	return s.ownerOnly(ctx, id, userID)
}

func (s *stubService) UnpublishBlog(ctx context.Context, id, userID string) error {
	return s.ownerOnly(ctx, id, userID)
}

func (s *stubService) IncrementViewCount(_ context.Context, id string) error {
	if id != "b1" {
		return blogs.ErrBlogNotFound
	}
	return nil
}

func (s *stubService) GetBlogByID(_ context.Context, id, viewerID string) (*blogs.BlogResponse, error) {
	s.lastViewer = viewerID
	return &blogs.BlogResponse{ID: id}, nil
}

func (s *stubService) GetBlogBySlug(_ context.Context, slug, viewerID string) (*blogs.BlogResponse, error) {
	s.lastViewer = viewerID
	return &blogs.BlogResponse{ID: "b1", Slug: slug}, nil
}

func (s *stubService) listing(q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
	s.lastQuery = q
	s.lastViewer = viewerID
	return &blogs.BlogListResponse{Blogs: []blogs.BlogListItemResponse{{ID: "b1"}}, Total: 1}, nil
}

func (s *stubService) GetAllBlogs(_ context.Context, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
	return s.listing(q, viewerID)
}

func (s *stubService) GetBlogsByAuthor(_ context.Context, _ string, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
	return s.listing(q, viewerID)
}

func (s *stubService) GetBlogsByCategory(_ context.Context, _ string, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
	return s.listing(q, viewerID)
}

func (s *stubService) SearchBlogs(_ context.Context, term string, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
	s.lastTerm = term
	return s.listing(q, viewerID)
}

func (s *stubService) GetRecentBlogs(_ context.Context, count int, _ string) ([]blogs.BlogListItemResponse, error) {
	s.lastCount = count
	return []blogs.BlogListItemResponse{}, nil
}

func (s *stubService) GetPopularBlogs(_ context.Context, count int, _ string) ([]blogs.BlogListItemResponse, error) {
	s.lastCount = count
	return []blogs.BlogListItemResponse{}, nil
}

func (s *stubService) BlogExists(context.Context, string) (bool, error)      { return true, nil }
func (s *stubService) IsOwner(context.Context, string, string) (bool, error) { return true, nil }

func (s *stubService) UploadImage(_ context.Context, _ string, file *multipart.FileHeader) (*blogs.ImageUploadResponse, error) {
	s.uploaded = file.Filename
	return &blogs.ImageUploadResponse{URL: "https://cdn.example.com/" + file.Filename}, nil
}

func newTestApp(svc *stubService) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	New(logger, middlewaretest.New(), svc).Start(app.Group("/api/v1"))
	return app
}

func request(method, target, body, user string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(middlewaretest.UserHeader, user)
	}
	return req
}

func TestCreateBlog(t *testing.T) {
	app := newTestApp(&stubService{})

	resp, err := app.Test(request(http.MethodPost, "/api/v1/blogs", `{"title":"Hello"}`, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(request(http.MethodPost, "/api/v1/blogs", `{"title":"Hello"}`, "author"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body blogs.BlogResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "author", body.AuthorID)
	assert.Equal(t, "Hello", body.Title)
}

func TestCreateBlogRejectsMalformedBody(t *testing.T) {
	resp, err := newTestApp(&stubService{}).Test(request(http.MethodPost, "/api/v1/blogs", `{"title":`, "author"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetBlogPassesOptionalViewer(t *testing.T) {
	svc := &stubService{}
	app := newTestApp(svc)

	_, err := app.Test(request(http.MethodGet, "/api/v1/blogs/b1", "", ""))
	require.NoError(t, err)
	assert.Empty(t, svc.lastViewer)

	resp, err := app.Test(request(http.MethodGet, "/api/v1/blogs/slug/hello-world", "", "author"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "author", svc.lastViewer)

	var body blogs.BlogResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "hello-world", body.Slug)
}

func TestListBlogsReadsQuery(t *testing.T) {
	svc := &stubService{}
	resp, err := newTestApp(svc).Test(request(http.MethodGet, "/api/v1/blogs?page=2&limit=5&sort_by=most_liked&category_ids=c1,%20,c2", "", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, blogs.ListBlogsQuery{Page: 2, Limit: 5, SortBy: "most_liked", CategoryIDs: []string{"c1", "c2"}}, svc.lastQuery)

	var body blogs.BlogListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Total)
}

func TestSearchAndShortLists(t *testing.T) {
	svc := &stubService{}
	app := newTestApp(svc)

	_, err := app.Test(request(http.MethodGet, "/api/v1/blogs/search?q=golang", "", ""))
	require.NoError(t, err)
	assert.Equal(t, "golang", svc.lastTerm)
	assert.Equal(t, blogs.ListBlogsQuery{Page: 1, Limit: 10}, svc.lastQuery)

	_, err = app.Test(request(http.MethodGet, "/api/v1/blogs/recent?count=7", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 7, svc.lastCount)

	_, err = app.Test(request(http.MethodGet, "/api/v1/blogs/popular", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 10, svc.lastCount)
}

func TestOwnerActionsHideForeignBlogs(t *testing.T) {
	app := newTestApp(&stubService{})

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/v1/blogs/b1"},
		{http.MethodPatch, "/api/v1/blogs/b1/restore"},
		{http.MethodPatch, "/api/v1/blogs/b1/publish"},
		{http.MethodPatch, "/api/v1/blogs/b1/unpublish"},
		{http.MethodPut, "/api/v1/blogs/b1"},
	} {
		body := ""
		if tc.method == http.MethodPut {
			body = `{"title":"x"}`
		}

		resp, err := app.Test(request(tc.method, tc.path, body, "intruder"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, tc.path)

		resp, err = app.Test(request(tc.method, tc.path, body, "author"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, tc.path)
	}
}

func TestIncrementViewCount(t *testing.T) {
	app := newTestApp(&stubService{})

	resp, err := app.Test(request(http.MethodPost, "/api/v1/blogs/b1/view", "", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(request(http.MethodPost, "/api/v1/blogs/missing/view", "", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadImage(t *testing.T) {
	svc := &stubService{}
	app := newTestApp(svc)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="cover.png"`)
	header.Set("Content-Type", "image/png")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/blogs/images", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set(middlewaretest.UserHeader, "author")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "cover.png", svc.uploaded)

	missing := request(http.MethodPost, "/api/v1/blogs/images", "", "author")
	resp, err = app.Test(missing)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
