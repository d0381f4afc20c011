package likeHandler

import (
	likeService "BlogPublisher/internal/api/like/service"
	"BlogPublisher/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LikesHandler struct {
	log          *logrus.Logger
	middleware   middleware.Middleware
	likesService likeService.ILikesService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	ls likeService.ILikesService,
) *LikesHandler {
	return &LikesHandler{
		log:          log,
		middleware:   middleware,
		likesService: ls,
	}
}

func (h *LikesHandler) Start(srv fiber.Router) {
	likes := srv.Group("/blogs/:id/likes")

	likes.Get("/count", h.GetLikeCount)

	likes.Post("/toggle", h.middleware.NewTokenMiddleware, h.middleware.NewRateLimiter, h.ToggleLike)
	likes.Get("/status", h.middleware.NewTokenMiddleware, h.GetLikeStatus)
	likes.Get("", h.middleware.NewTokenMiddleware, h.ListLikes)
}
