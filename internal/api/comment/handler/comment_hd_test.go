package commentHandler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"BlogPublisher/internal/api/comment"
	"BlogPublisher/internal/middleware/middlewaretest"
	"BlogPublisher/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	lastViewer string
}

func (s *stubService) CreateComment(_ context.Context, blogID, userID string, req comments.CommentRequest) (*comments.CommentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		verr := &response.ValidationError{}
		verr.Add("content", "required", "content is required")
		return nil, verr
	}
	return &comments.CommentResponse{ID: "c1", BlogID: blogID, UserID: userID, Content: req.Content}, nil
}

func (s *stubService) UpdateComment(_ context.Context, id, userID string, req comments.CommentRequest) (*comments.CommentResponse, error) {
	if userID != "reader" {
		return nil, comments.ErrCommentNotFound
	}
	return &comments.CommentResponse{ID: id, UserID: userID, Content: req.Content}, nil
}

func (s *stubService) DeleteComment(context.Context, string, string) error { return nil }

func (s *stubService) ListComments(_ context.Context, _ string, viewerID string) ([]comments.CommentResponse, error) {
	s.lastViewer = viewerID
	return []comments.CommentResponse{{ID: "c1"}}, nil
}

func (s *stubService) ListCommentsForAuthor(context.Context, string, string) ([]comments.CommentResponse, error) {
	return []comments.CommentResponse{}, nil
}

func (s *stubService) CountComments(context.Context, string) (int, error) { return 3, nil }

func newTestApp(svc *stubService) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	New(logger, middlewaretest.New(), svc).Start(app.Group("/api/v1"))
	return app
}

func jsonRequest(method, target, body, user string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(middlewaretest.UserHeader, user)
	}
	return req
}

func TestCreateComment(t *testing.T) {
	resp, err := newTestApp(&stubService{}).Test(jsonRequest(http.MethodPost, "/api/v1/blogs/b1/comments", `{"content":"hi"}`, "reader"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body comments.CommentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "b1", body.BlogID)
	assert.Equal(t, "reader", body.UserID)
}

func TestCreateCommentValidationError(t *testing.T) {
	resp, err := newTestApp(&stubService{}).Test(jsonRequest(http.MethodPost, "/api/v1/blogs/b1/comments", `{"content":"  "}`, "reader"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateCommentRequiresAuth(t *testing.T) {
	resp, err := newTestApp(&stubService{}).Test(jsonRequest(http.MethodPost, "/api/v1/blogs/b1/comments", `{"content":"hi"}`, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateCommentByOtherUserIsNotFound(t *testing.T) {
	resp, err := newTestApp(&stubService{}).Test(jsonRequest(http.MethodPut, "/api/v1/comments/c1", `{"content":"x"}`, "author"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListCommentsPassesOptionalViewer(t *testing.T) {
	svc := &stubService{}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/blogs/b1/comments", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, svc.lastViewer)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/blogs/b1/comments", nil)
	req.Header.Set(middlewaretest.UserHeader, "reader")
	_, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "reader", svc.lastViewer)
}

func TestCountComments(t *testing.T) {
	resp, err := newTestApp(&stubService{}).Test(httptest.NewRequest(http.MethodGet, "/api/v1/blogs/b1/comments/count", nil))
	require.NoError(t, err)

	var body comments.CommentCountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 3, body.Count)
}
