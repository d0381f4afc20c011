package blogHandler

import (
	blogService "BlogPublisher/internal/api/blog/service"
	"BlogPublisher/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BlogsHandler struct {
	log          *logrus.Logger
	middleware   middleware.Middleware
	blogsService blogService.IBlogsService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	bs blogService.IBlogsService,
) *BlogsHandler {
	return &BlogsHandler{
		log:          log,
		middleware:   middleware,
		blogsService: bs,
	}
}

func (h *BlogsHandler) Start(srv fiber.Router) {
	blogs := srv.Group("/blogs")

	// Reads: anonymous callers allowed, owners also see their drafts.
	blogs.Get("", h.middleware.NewOptionalTokenMiddleware, h.GetAllBlogs)
	blogs.Get("/search", h.middleware.NewOptionalTokenMiddleware, h.SearchBlogs)
	blogs.Get("/recent", h.middleware.NewOptionalTokenMiddleware, h.GetRecentBlogs)
	blogs.Get("/popular", h.middleware.NewOptionalTokenMiddleware, h.GetPopularBlogs)
	blogs.Get("/author/:authorId", h.middleware.NewOptionalTokenMiddleware, h.GetBlogsByAuthor)
	blogs.Get("/category/:id", h.middleware.NewOptionalTokenMiddleware, h.GetBlogsByCategory)
	blogs.Get("/slug/:slug", h.middleware.NewOptionalTokenMiddleware, h.GetBlogBySlug)
	blogs.Get("/:id", h.middleware.NewOptionalTokenMiddleware, h.GetBlogByID)

	blogs.Post("/images", h.middleware.NewTokenMiddleware, h.middleware.NewRateLimiter, h.UploadImage)
	blogs.Post("/:id/view", h.middleware.NewRateLimiter, h.IncrementViewCount)

	// Author only
	blogs.Post("", h.middleware.NewTokenMiddleware, h.middleware.NewRateLimiter, h.CreateBlog)
	blogs.Put("/:id", h.middleware.NewTokenMiddleware, h.UpdateBlog)
	blogs.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteBlog)
	blogs.Patch("/:id/restore", h.middleware.NewTokenMiddleware, h.RestoreBlog)
	blogs.Patch("/:id/publish", h.middleware.NewTokenMiddleware, h.PublishBlog)
	blogs.Patch("/:id/unpublish", h.middleware.NewTokenMiddleware, h.UnpublishBlog)
}
