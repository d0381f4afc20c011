package blogService

import (
	"context"
	"errors"
	"fmt"

	"BlogPublisher/internal/api/blog"
	blogRepository "BlogPublisher/internal/api/blog/repository"
	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"BlogPublisher/pkg/response"
	"github.com/sirupsen/logrus"
)

func (s *blogsService) CreateBlog(ctx context.Context, req blogs.CreateBlogRequest, authorID string) (*blogs.BlogResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	req = req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, response.FromValidator(err)
	}

	repo, err := s.blogsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	categoryIDs, err := s.resolveCategories(ctx, repo, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	slug, err := blogs.GenerateUniqueSlug(ctx, req.Title, func(ctx context.Context, candidate string) (bool, error) {
		return repo.Blogs.SlugExists(ctx, candidate, "")
	})
	if err != nil {
		return nil, err
	}

	now := s.utils.Now()
	blogID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, err
	}

	blog := entity.Blog{
		ID:                blogID,
		Title:             req.Title,
		Content:           req.Content,
		Summary:           req.Summary,
		FeaturedImageURL:  req.FeaturedImageURL,
		MetaDescription:   req.MetaDescription,
		AuthorID:          authorID,
		IsPublished:       req.IsPublished,
		CreatedAt:         now,
		Slug:              slug,
		EstimatedReadTime: blogs.EstimateReadTime(req.Content),
	}
	if blog.IsPublished {
		blog.PublishedAt = &now
	}

	if err := repo.Blogs.CreateBlog(ctx, blog); err != nil {
		if errors.Is(err, blogs.ErrSlugUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", blogs.ErrCreateBlog, err)
	}

	if err := repo.Categories.ReplaceBlogCategories(ctx, blogID, categoryIDs); err != nil {
		return nil, fmt.Errorf("%w: %w", blogs.ErrCreateBlog, err)
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, fmt.Errorf("%w: %w", blogs.ErrCreateBlog, err)
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"blog_id":    blogID,
		"slug":       slug,
	}).Info("Blog created")

	return s.GetBlogByID(ctx, blogID, authorID)
}

// UpdateBlog keeps the slug unless the title changed and sets published_at only on the first publish.
func (s *blogsService) UpdateBlog(ctx context.Context, id string, req blogs.UpdateBlogRequest, userID string) (*blogs.BlogResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	normalized := blogs.CreateBlogRequest(req).Normalize()
	if err := s.validator.Struct(normalized); err != nil {
		return nil, response.FromValidator(err)
	}

	repo, err := s.blogsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	blog, err := s.ownedBlog(ctx, repo, id, userID)
	if err != nil {
		return nil, err
	}

	categoryIDs, err := s.resolveCategories(ctx, repo, normalized.CategoryIDs)
	if err != nil {
		return nil, err
	}

	if normalized.Title != blog.Title {
		blog.Slug, err = blogs.GenerateUniqueSlug(ctx, normalized.Title, func(ctx context.Context, candidate string) (bool, error) {
			return repo.Blogs.SlugExists(ctx, candidate, id)
		})
		if err != nil {
			return nil, err
		}
	}

	now := s.utils.Now()
	previousImage := blog.FeaturedImageURL

	if normalized.IsPublished && blog.PublishedAt == nil {
		blog.PublishedAt = &now
	}
	blog.Title = normalized.Title
	blog.Content = normalized.Content
	blog.Summary = normalized.Summary
	blog.FeaturedImageURL = normalized.FeaturedImageURL
	blog.MetaDescription = normalized.MetaDescription
	blog.IsPublished = normalized.IsPublished
	blog.EstimatedReadTime = blogs.EstimateReadTime(normalized.Content)
	blog.UpdatedAt = &now

	if err := repo.Blogs.UpdateBlog(ctx, blog); err != nil {
		if errors.Is(err, blogs.ErrSlugUnavailable) || errors.Is(err, blogs.ErrBlogNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", blogs.ErrUpdateBlog, err)
	}

	if err := repo.Categories.ReplaceBlogCategories(ctx, id, categoryIDs); err != nil {
		return nil, fmt.Errorf("%w: %w", blogs.ErrUpdateBlog, err)
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, fmt.Errorf("%w: %w", blogs.ErrUpdateBlog, err)
	}

	if previousImage != "" && previousImage != blog.FeaturedImageURL {
		s.removeImage(ctx, previousImage)
	}

	return s.GetBlogByID(ctx, id, userID)
}

func (s *blogsService) DeleteBlog(ctx context.Context, id, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if _, err := s.ownedBlog(ctx, repo, id, userID); err != nil {
		return err
	}

	if err := repo.Blogs.SoftDeleteBlog(ctx, id, *entity.NewDeletionRecord(s.utils.Now(), userID)); err != nil {
		if errors.Is(err, blogs.ErrBlogNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", blogs.ErrDeleteBlog, err)
	}

	return nil
}

// RestoreBlog reassigns a fresh slug when another blog took the old one while this one was deleted.
func (s *blogsService) RestoreBlog(ctx context.Context, id, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	blog, err := repo.Blogs.GetBlogByID(ctx, id)
	if err != nil {
		return err
	}
	if !blog.IsDeleted() || !blog.IsOwnedBy(userID) {
		return blogs.ErrBlogNotFound
	}

	slug := blog.Slug
	taken, err := repo.Blogs.SlugExists(ctx, slug, id)
	if err != nil {
		return err
	}
	if taken {
		slug, err = blogs.GenerateUniqueSlug(ctx, blog.Title, func(ctx context.Context, candidate string) (bool, error) {
			return repo.Blogs.SlugExists(ctx, candidate, id)
		})
		if err != nil {
			return err
		}
	}

	if err := repo.Blogs.RestoreBlog(ctx, id, slug, s.utils.Now()); err != nil {
		if errors.Is(err, blogs.ErrBlogNotFound) || errors.Is(err, blogs.ErrSlugUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", blogs.ErrUpdateBlog, err)
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return fmt.Errorf("%w: %w", blogs.ErrUpdateBlog, err)
	}

	return nil
}

// PublishBlog is a no-op for an already published blog.
func (s *blogsService) PublishBlog(ctx context.Context, id, userID string) error {
	return s.setPublished(ctx, id, userID, true)
}

// UnpublishBlog keeps published_at.
func (s *blogsService) UnpublishBlog(ctx context.Context, id, userID string) error {
	return s.setPublished(ctx, id, userID, false)
}

func (s *blogsService) setPublished(ctx context.Context, id, userID string, published bool) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	blog, err := s.ownedBlog(ctx, repo, id, userID)
	if err != nil {
		return err
	}

	if blog.IsPublished == published {
		return nil
	}

	if err := repo.Blogs.SetPublished(ctx, id, published, s.utils.Now()); err != nil {
		if errors.Is(err, blogs.ErrBlogNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", blogs.ErrUpdateBlog, err)
	}

	return nil
}

func (s *blogsService) IncrementViewCount(ctx context.Context, id string) error {
	repo, err := s.blogsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	counted, err := repo.Blogs.IncrementViewCount(ctx, id)
	if err != nil {
		return err
	}
	if !counted {
		return blogs.ErrBlogNotFound
	}
	return nil
}

// ownedBlog hides missing, deleted and foreign blogs behind the same ErrBlogNotFound.
func (s *blogsService) ownedBlog(ctx context.Context, repo blogRepository.Client, id, userID string) (entity.Blog, error) {
	blog, err := repo.Blogs.GetBlogByID(ctx, id)
	if err != nil {
		return entity.Blog{}, err
	}
	if blog.IsDeleted() || !blog.IsOwnedBy(userID) {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"blog_id":    id,
			"user_id":    userID,
		}).Warn("Blog not available to caller")
		return entity.Blog{}, blogs.ErrBlogNotFound
	}
	return blog, nil
}

func (s *blogsService) resolveCategories(ctx context.Context, repo blogRepository.Client, ids []string) ([]string, error) {
	resolved, err := repo.Categories.ResolveActiveCategories(ctx, ids)
	if err != nil {
		return nil, err
	}

	verr := &response.ValidationError{}
	if len(resolved) == 0 {
		verr.Add("category_ids", "exists", "category_ids must reference at least one existing category")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(resolved))
	for _, c := range resolved {
		out = append(out, c.ID)
	}
	return out, nil
}
