package middleware

import (
	jwtPkg "BlogPublisher/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	user, err := jwtPkg.ParseBearer(ctx.Get(fiber.HeaderAuthorization))
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"path":       ctx.Path(),
			"method":     ctx.Method(),
			"client_ip":  ctx.IP(),
			"error":      err.Error(),
		}).Warn("Token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
			"code":  "UNAUTHORIZED",
		})
	}

	jwtPkg.SetUserLoginData(ctx, user)
	return ctx.Next()
}

// NewOptionalTokenMiddleware lets anonymous callers through so public reads still see the owner's drafts when a token is sent.
func (m *middleware) NewOptionalTokenMiddleware(ctx *fiber.Ctx) error {
	header := ctx.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ctx.Next()
	}

	user, err := jwtPkg.ParseBearer(header)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"path":       ctx.Path(),
			"error":      err.Error(),
		}).Debug("Ignoring invalid optional token")
		return ctx.Next()
	}

	jwtPkg.SetUserLoginData(ctx, user)
	return ctx.Next()
}

// NewAdminMiddleware must run after NewTokenMiddleware.
func (m *middleware) NewAdminMiddleware(ctx *fiber.Ctx) error {
	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
			"code":  "UNAUTHORIZED",
		})
	}

	if !user.IsAdmin() {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"user_id":    user.ID,
			"path":       ctx.Path(),
		}).Warn("Admin role required")
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "admin role required",
			"code":  "FORBIDDEN",
		})
	}

	return ctx.Next()
}
