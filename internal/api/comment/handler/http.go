package commentHandler

import (
	commentService "BlogPublisher/internal/api/comment/service"
	"BlogPublisher/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CommentsHandler struct {
	log             *logrus.Logger
	middleware      middleware.Middleware
	commentsService commentService.ICommentsService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	cs commentService.ICommentsService,
) *CommentsHandler {
	return &CommentsHandler{
		log:             log,
		middleware:      middleware,
		commentsService: cs,
	}
}

func (h *CommentsHandler) Start(srv fiber.Router) {
	blogComments := srv.Group("/blogs/:id/comments")

	blogComments.Get("", h.middleware.NewOptionalTokenMiddleware, h.ListComments)
	blogComments.Get("/count", h.CountComments)
	blogComments.Get("/manage", h.middleware.NewTokenMiddleware, h.ListCommentsForAuthor)
	blogComments.Post("", h.middleware.NewTokenMiddleware, h.middleware.NewRateLimiter, h.CreateComment)

	comments := srv.Group("/comments")
	comments.Put("/:id", h.middleware.NewTokenMiddleware, h.UpdateComment)
	comments.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteComment)
}
