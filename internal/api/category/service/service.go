package categoryService

import (
	"context"
	"time"

	"BlogPublisher/internal/api/category"
	categoryRepository "BlogPublisher/internal/api/category/repository"
	"BlogPublisher/internal/entity"
	"BlogPublisher/pkg/redis"
	"BlogPublisher/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const (
	allCategoriesCacheKey = "categories:all"
	allCategoriesCacheTTL = 10 * time.Minute
	defaultPageSize       = 10
	maxPageSize           = 100
)

type ICategoriesService interface {
	GetAllCategories(ctx context.Context) (*categories.CategoryListResponse, error)
	GetPagedCategories(ctx context.Context, filter entity.CategoryFilter) (*categories.PagedCategoryResponse, error)
	GetCategoryByID(ctx context.Context, id string) (*categories.CategoryResponse, error)
	CreateCategory(ctx context.Context, req categories.CategoryRequest, actorID string) (*categories.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, req categories.CategoryRequest, actorID string) (*categories.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id, actorID string) error
	RestoreCategory(ctx context.Context, id, actorID string) error
	CategoryExists(ctx context.Context, id string) (bool, error)
	NameExists(ctx context.Context, name, excludeID string) (bool, error)
}

type categoriesService struct {
	log            *logrus.Logger
	categoriesRepo categoryRepository.Repository
	cache          redis.IRedis
	validator      *validator.Validate
	utils          utils.IUtils
}

func NewCategoriesService(
	log *logrus.Logger,
	categoriesRepo categoryRepository.Repository,
	cache redis.IRedis,
	validate *validator.Validate,
	utils utils.IUtils,
) ICategoriesService {
	return &categoriesService{
		log:            log,
		categoriesRepo: categoriesRepo,
		cache:          cache,
		validator:      validate,
		utils:          utils,
	}
}
