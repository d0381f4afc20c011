package blogHandler

import (
	"strings"
	"time"

	"BlogPublisher/internal/api/blog"
	contextPkg "BlogPublisher/pkg/context"
	"BlogPublisher/pkg/handlerUtil"
	jwtPkg "BlogPublisher/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *BlogsHandler) GetBlogByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	result, err := h.blogsService.GetBlogByID(c, ctx.Params("id"), jwtPkg.GetViewerID(ctx))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_blog")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *BlogsHandler) GetBlogBySlug(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	result, err := h.blogsService.GetBlogBySlug(c, ctx.Params("slug"), jwtPkg.GetViewerID(ctx))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_blog_by_slug")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *BlogsHandler) GetAllBlogs(ctx *fiber.Ctx) error {
	return h.listBlogs(ctx, "get_all_blogs", func(c context.Context, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
		return h.blogsService.GetAllBlogs(c, q, viewerID)
	})
}

func (h *BlogsHandler) GetBlogsByAuthor(ctx *fiber.Ctx) error {
	authorID := ctx.Params("authorId")
	return h.listBlogs(ctx, "get_blogs_by_author", func(c context.Context, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
		return h.blogsService.GetBlogsByAuthor(c, authorID, q, viewerID)
	})
}

func (h *BlogsHandler) GetBlogsByCategory(ctx *fiber.Ctx) error {
	categoryID := ctx.Params("id")
	return h.listBlogs(ctx, "get_blogs_by_category", func(c context.Context, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
		return h.blogsService.GetBlogsByCategory(c, categoryID, q, viewerID)
	})
}

func (h *BlogsHandler) SearchBlogs(ctx *fiber.Ctx) error {
	term := ctx.Query("q")
	return h.listBlogs(ctx, "search_blogs", func(c context.Context, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
		return h.blogsService.SearchBlogs(c, term, q, viewerID)
	})
}

func (h *BlogsHandler) GetRecentBlogs(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	result, err := h.blogsService.GetRecentBlogs(c, ctx.QueryInt("count", 10), jwtPkg.GetViewerID(ctx))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_recent_blogs")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{"blogs": result})
	}
}

func (h *BlogsHandler) GetPopularBlogs(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	result, err := h.blogsService.GetPopularBlogs(c, ctx.QueryInt("count", 10), jwtPkg.GetViewerID(ctx))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_popular_blogs")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{"blogs": result})
	}
}

func (h *BlogsHandler) listBlogs(
	ctx *fiber.Ctx,
	operation string,
	list func(c context.Context, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error),
) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	result, err := list(c, listQuery(ctx), jwtPkg.GetViewerID(ctx))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), operation)
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

// listQuery reads ?page=&limit=&sort_by=&category_ids=a,b
func listQuery(ctx *fiber.Ctx) blogs.ListBlogsQuery {
	q := blogs.ListBlogsQuery{
		Page:   ctx.QueryInt("page", 1),
		Limit:  ctx.QueryInt("limit", 10),
		SortBy: ctx.Query("sort_by"),
	}

	for _, id := range strings.Split(ctx.Query("category_ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			q.CategoryIDs = append(q.CategoryIDs, id)
		}
	}

	return q
}
