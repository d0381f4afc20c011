package categoryHandler

import (
	categoryService "BlogPublisher/internal/api/category/service"
	"BlogPublisher/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CategoriesHandler struct {
	log               *logrus.Logger
	middleware        middleware.Middleware
	categoriesService categoryService.ICategoriesService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	cs categoryService.ICategoriesService,
) *CategoriesHandler {
	return &CategoriesHandler{
		log:               log,
		middleware:        middleware,
		categoriesService: cs,
	}
}

func (h *CategoriesHandler) Start(srv fiber.Router) {
	categories := srv.Group("/categories")

	categories.Get("", h.GetAllCategories)
	categories.Get("/paged", h.GetPagedCategories)
	categories.Get("/:id", h.GetCategoryByID)

	categories.Post("", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.CreateCategory)
	categories.Put("/:id", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.UpdateCategory)
	categories.Delete("/:id", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.DeleteCategory)
	categories.Patch("/:id/restore", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.RestoreCategory)
}
