// Package middlewaretest provides a Middleware for handler tests. The caller is taken from the
// X-Test-User header and X-Test-Role (default "user").
package middlewaretest

import (
	"BlogPublisher/internal/entity"
	"BlogPublisher/internal/middleware"
	jwtPkg "BlogPublisher/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

const (
	UserHeader = "X-Test-User"
	RoleHeader = "X-Test-Role"
)

type stub struct{}

func New() middleware.Middleware {
	return stub{}
}

func (stub) NewRateLimiter(ctx *fiber.Ctx) error { return ctx.Next() }

func (stub) NewTokenMiddleware(ctx *fiber.Ctx) error {
	if !authenticate(ctx) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return ctx.Next()
}

func (stub) NewOptionalTokenMiddleware(ctx *fiber.Ctx) error {
	authenticate(ctx)
	return ctx.Next()
}

func (stub) NewAdminMiddleware(ctx *fiber.Ctx) error {
	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil || !user.IsAdmin() {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
	}
	return ctx.Next()
}

func (stub) NewRequestIDMiddleware() fiber.Handler { return next }
func (stub) NewLoggingMiddleware() fiber.Handler   { return next }
func (stub) NewMetricsMiddleware() fiber.Handler   { return next }
func (stub) GetRequestID(*fiber.Ctx) string        { return "test-request" }

func next(c *fiber.Ctx) error { return c.Next() }

func authenticate(ctx *fiber.Ctx) bool {
	userID := ctx.Get(UserHeader)
	if userID == "" {
		return false
	}

	role := ctx.Get(RoleHeader)
	if role == "" {
		role = entity.RoleUser
	}

	jwtPkg.SetUserLoginData(ctx, entity.UserLoginData{
		ID:       userID,
		Email:    userID + "@example.com",
		Username: userID,
		Role:     role,
	})
	return true
}
