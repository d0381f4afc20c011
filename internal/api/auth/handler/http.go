package authHandler

import (
	authService "BlogPublisher/internal/api/auth/service"
	"BlogPublisher/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log         *logrus.Logger
	authService authService.AuthService
	middleware  middleware.Middleware
}

func New(
	log *logrus.Logger,
	as authService.AuthService,
	middleware middleware.Middleware) *AuthHandler {
	return &AuthHandler{
		log:         log,
		authService: as,
		middleware:  middleware,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")
	auth.Post("/login", h.middleware.NewRateLimiter, h.HandleLogin)

	users := srv.Group("/users")
	users.Post("", h.middleware.NewRateLimiter, h.HandleRegister)
	users.Get("/me", h.middleware.NewTokenMiddleware, h.HandleGetMe)
}
