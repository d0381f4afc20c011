package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"BlogPublisher/internal/entity"
	jwtPkg "BlogPublisher/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware() Middleware {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(logger)
}

func signToken(t *testing.T, user entity.UserLoginData) string {
	t.Helper()
	token, _, err := jwtPkg.Sign(user, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func viewerApp(m Middleware, handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(jwtPkg.GetViewerID(c))
	})
	app.Get("/", handlers...)
	return app
}

func TestTokenMiddleware(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")
	m := newTestMiddleware()
	app := viewerApp(m, m.NewTokenMiddleware)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", signToken(t, entity.UserLoginData{ID: "u1", Email: "a@b.c", Username: "alice", Role: entity.RoleUser}))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "u1", string(body))
}

func TestOptionalTokenMiddlewareAllowsAnonymous(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")
	m := newTestMiddleware()
	app := viewerApp(m, m.NewOptionalTokenMiddleware)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, string(body))
}

func TestAdminMiddleware(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")
	m := newTestMiddleware()
	app := viewerApp(m, m.NewTokenMiddleware, m.NewAdminMiddleware)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", signToken(t, entity.UserLoginData{ID: "u1", Email: "a@b.c", Username: "alice", Role: entity.RoleUser}))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", signToken(t, entity.UserLoginData{ID: "root", Email: "r@b.c", Username: "root", Role: entity.RoleAdmin}))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddleware()
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDKey, "fixed-id")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", resp.Header.Get(RequestIDKey))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(RequestIDKey), 26)
}

func TestSanitizeRequestBody(t *testing.T) {
	out := sanitizeRequestBody("/api/v1/auth/login", []byte(`{"email":"a@b.c","password":"hunter22"}`))
	assert.NotContains(t, out, "hunter22")
	assert.NotContains(t, out, "a@b.c")

	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("/api/v1/blogs", []byte("plain")))
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	limiter := newRateLimiter(1, 2)
	l := limiter.GetLimiterFrom("10.0.0.1")

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
	assert.True(t, limiter.GetLimiterFrom("10.0.0.2").Allow())
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	first := limiter.GetLimiterFrom("10.0.0.1")
	require.True(t, first.Allow())
	limiter.GetLimiterFrom("10.0.0.2")

	now = now.Add(limiterIdleTTL / 2)
	assert.Same(t, first, limiter.GetLimiterFrom("10.0.0.1"))

	now = now.Add(limiterIdleTTL + time.Second)
	limiter.GetLimiterFrom("10.0.0.3")

	assert.Len(t, limiter.bucket, 1)
	assert.NotSame(t, first, limiter.GetLimiterFrom("10.0.0.1"))
}
