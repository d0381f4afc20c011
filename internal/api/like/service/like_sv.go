package likeService

import (
	"context"
	"errors"
	"fmt"

	"BlogPublisher/internal/api/like"
	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"github.com/sirupsen/logrus"
)

// ToggleLike removes the caller's like if present, otherwise adds one. The blog row is locked
// until commit.
func (s *likesService) ToggleLike(ctx context.Context, blogID, userID string) (*likes.ToggleLikeResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.likesRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	blog, err := repo.Blogs.GetBlogForUpdate(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if blog.IsDeleted() || !blog.IsPublished {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"blog_id":    blogID,
		}).Warn("Like rejected for unavailable blog")
		return nil, likes.ErrBlogNotFound
	}

	removed, err := repo.Likes.DeleteLike(ctx, blogID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", likes.ErrToggleLike, err)
	}

	result := &likes.ToggleLikeResponse{LikeCount: blog.LikeCount}

	if removed {
		result.LikeCount, err = repo.Blogs.AdjustLikeCount(ctx, blogID, -1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", likes.ErrToggleLike, err)
		}
	} else {
		now := s.utils.Now()
		likeID, err := s.utils.NewULIDFromTimestamp(now)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate ULID")
			return nil, err
		}

		inserted, err := repo.Likes.CreateLike(ctx, entity.Like{
			ID:      likeID,
			BlogID:  blogID,
			UserID:  userID,
			LikedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", likes.ErrToggleLike, err)
		}

		result.Liked = true
		if inserted {
			result.LikeCount, err = repo.Blogs.AdjustLikeCount(ctx, blogID, 1)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", likes.ErrToggleLike, err)
			}
		}
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return nil, fmt.Errorf("%w: %w", likes.ErrToggleLike, err)
	}

	action := "unlike"
	if result.Liked {
		action = "like"
	}
	likeToggles.WithLabelValues(action).Inc()

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"blog_id":    blogID,
		"user_id":    userID,
		"action":     action,
		"like_count": result.LikeCount,
	}).Debug("Like toggled")

	return result, nil
}

func (s *likesService) IsLiked(ctx context.Context, blogID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	repo, err := s.likesRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return false, err
	}

	return repo.Likes.IsLiked(ctx, blogID, userID)
}

func (s *likesService) CountLikes(ctx context.Context, blogID string) (int, error) {
	repo, err := s.likesRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return 0, err
	}

	return repo.Likes.CountLikes(ctx, blogID)
}

// ListLikes is only populated for the blog's author; anyone else gets an empty list.
func (s *likesService) ListLikes(ctx context.Context, blogID, requesterID string) ([]likes.LikeResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.likesRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	blog, err := repo.Blogs.GetBlog(ctx, blogID)
	if err != nil {
		if errors.Is(err, likes.ErrBlogNotFound) {
			return []likes.LikeResponse{}, nil
		}
		return nil, err
	}

	if !blog.IsOwnedBy(requesterID) {
		return []likes.LikeResponse{}, nil
	}

	list, err := repo.Likes.ListLikes(ctx, blogID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"blog_id":    blogID,
			"error":      err.Error(),
		}).Error("Failed to list likes")
		return nil, err
	}

	out := make([]likes.LikeResponse, 0, len(list))
	for _, l := range list {
		out = append(out, likes.LikeResponse{
			ID:        l.ID,
			BlogID:    l.BlogID,
			BlogTitle: l.BlogTitle,
			UserID:    l.UserID,
			UserName:  l.UserName,
			UserEmail: l.UserEmail,
			LikedAt:   l.LikedAt,
		})
	}

	return out, nil
}

func (s *likesService) LikedBlogIDs(ctx context.Context, userID string, blogIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if userID == "" || len(blogIDs) == 0 {
		return liked, nil
	}

	repo, err := s.likesRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	ids, err := repo.Likes.LikedBlogIDs(ctx, userID, blogIDs)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
