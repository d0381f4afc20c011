package categoryService

import (
	"context"
	"errors"

	"BlogPublisher/internal/api/category"
	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"BlogPublisher/pkg/redis"
	"BlogPublisher/pkg/response"
	"github.com/sirupsen/logrus"
)

// GetAllCategories serves the non-deleted categories from cache when possible.
func (s *categoriesService) GetAllCategories(ctx context.Context) (*categories.CategoryListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var cached categories.CategoryListResponse
	if s.cache != nil {
		err := s.cache.GetJSON(ctx, allCategoriesCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to read categories from cache")
		}
	}

	repo, err := s.categoriesRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	list, err := repo.Categories.GetAllCategories(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get categories")
		return nil, err
	}

	resp := &categories.CategoryListResponse{
		Categories: makeCategoryResponses(list),
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, allCategoriesCacheKey, resp, allCategoriesCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to cache categories")
		}
	}

	return resp, nil
}

func (s *categoriesService) GetPagedCategories(ctx context.Context, filter entity.CategoryFilter) (*categories.PagedCategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	repo, err := s.categoriesRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	list, total, err := repo.Categories.GetPagedCategories(ctx, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"filter":     filter.Filter,
			"sorting":    filter.Sorting,
			"error":      err.Error(),
		}).Error("Failed to get paged categories")
		return nil, err
	}

	return &categories.PagedCategoryResponse{
		TotalCount: total,
		Items:      makeCategoryResponses(list),
	}, nil
}

func (s *categoriesService) GetCategoryByID(ctx context.Context, id string) (*categories.CategoryResponse, error) {
	repo, err := s.categoriesRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	category, err := repo.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.IsDeleted() {
		return nil, categories.ErrCategoryNotFound
	}

	resp := makeCategoryResponse(category)
	return &resp, nil
}

func (s *categoriesService) CreateCategory(ctx context.Context, req categories.CategoryRequest, actorID string) (*categories.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	req = req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, response.FromValidator(err)
	}

	repo, err := s.categoriesRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	if err := s.ensureNameFree(ctx, repo.Categories.NameExists, req.Name, ""); err != nil {
		return nil, err
	}

	now := s.utils.Now()
	categoryID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, err
	}

	category := entity.Category{
		ID:          categoryID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.Active(),
		CreatedAt:   now,
		CreatedBy:   actorID,
	}

	if err := repo.Categories.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, categories.ErrCategoryNameTaken) {
			return nil, err
		}
		return nil, categories.ErrCreateCategory
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, categories.ErrCreateCategory
	}

	s.invalidate(ctx)

	resp := makeCategoryResponse(category)
	return &resp, nil
}

func (s *categoriesService) UpdateCategory(ctx context.Context, id string, req categories.CategoryRequest, actorID string) (*categories.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	req = req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, response.FromValidator(err)
	}

	repo, err := s.categoriesRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	category, err := repo.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.IsDeleted() {
		return nil, categories.ErrCategoryNotFound
	}

	if err := s.ensureNameFree(ctx, repo.Categories.NameExists, req.Name, id); err != nil {
		return nil, err
	}

	now := s.utils.Now()
	category.Name = req.Name
	category.Description = req.Description
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.UpdatedAt = &now
	category.UpdatedBy = actorID

	if err := repo.Categories.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, categories.ErrCategoryNameTaken) || errors.Is(err, categories.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, categories.ErrUpdateCategory
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, categories.ErrUpdateCategory
	}

	s.invalidate(ctx)

	resp := makeCategoryResponse(category)
	return &resp, nil
}

func (s *categoriesService) DeleteCategory(ctx context.Context, id, actorID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoriesRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Categories.SoftDeleteCategory(ctx, id, *entity.NewDeletionRecord(s.utils.Now(), actorID)); err != nil {
		if errors.Is(err, categories.ErrCategoryNotFound) {
			return err
		}
		return categories.ErrDeleteCategory
	}

	s.invalidate(ctx)
	return nil
}

// RestoreCategory fails with ErrCategoryNameTaken when an active category took the name meanwhile.
func (s *categoriesService) RestoreCategory(ctx context.Context, id, actorID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoriesRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	category, err := repo.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	if !category.IsDeleted() {
		return categories.ErrCategoryNotFound
	}

	if err := s.ensureNameFree(ctx, repo.Categories.NameExists, category.Name, id); err != nil {
		return err
	}

	if err := repo.Categories.RestoreCategory(ctx, id, actorID, s.utils.Now()); err != nil {
		if errors.Is(err, categories.ErrCategoryNameTaken) || errors.Is(err, categories.ErrCategoryNotFound) {
			return err
		}
		return categories.ErrUpdateCategory
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return categories.ErrUpdateCategory
	}

	s.invalidate(ctx)
	return nil
}

func (s *categoriesService) CategoryExists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, categories.ErrCategoryNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *categoriesService) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	repo, err := s.categoriesRepo.NewClient(false)
	if err != nil {
		return false, err
	}
	return repo.Categories.NameExists(ctx, name, excludeID)
}

func (s *categoriesService) ensureNameFree(
	ctx context.Context,
	nameExists func(ctx context.Context, name, excludeID string) (bool, error),
	name, excludeID string,
) error {
	taken, err := nameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"name":       name,
		}).Warn("Category name already exists")
		return categories.ErrCategoryNameTaken
	}
	return nil
}

func (s *categoriesService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, allCategoriesCacheKey); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to invalidate category cache")
	}
}

func makeCategoryResponses(list []entity.Category) []categories.CategoryResponse {
	out := make([]categories.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, makeCategoryResponse(c))
	}
	return out
}

func makeCategoryResponse(c entity.Category) categories.CategoryResponse {
	return categories.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		CreatedBy:   c.CreatedBy,
		UpdatedAt:   c.UpdatedAt,
		UpdatedBy:   c.UpdatedBy,
	}
}
