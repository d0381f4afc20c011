package commentService

import (
	"context"
	"errors"
	"fmt"

	"BlogPublisher/internal/api/comment"
	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"BlogPublisher/pkg/response"
	"github.com/sirupsen/logrus"
)

func (s *commentsService) CreateComment(ctx context.Context, blogID, userID string, req comments.CommentRequest) (*comments.CommentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	req = req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, response.FromValidator(err)
	}

	repo, err := s.commentsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	blog, err := repo.Blogs.GetBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if blog.IsDeleted() || !blog.IsPublished {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"blog_id":    blogID,
		}).Warn("Comment rejected for unavailable blog")
		return nil, comments.ErrBlogNotFound
	}

	now := s.utils.Now()
	commentID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, err
	}

	if err := repo.Comments.CreateComment(ctx, entity.Comment{
		ID:        commentID,
		BlogID:    blogID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", comments.ErrCreateComment, err)
	}

	created, err := repo.Comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	resp := makeCommentResponse(created, userID)
	return &resp, nil
}

// UpdateComment is limited to the commenter; anyone else sees ErrCommentNotFound.
func (s *commentsService) UpdateComment(ctx context.Context, id, userID string, req comments.CommentRequest) (*comments.CommentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	req = req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, response.FromValidator(err)
	}

	repo, err := s.commentsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	existing, err := repo.Comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.UserID != userID {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"comment_id":   id,
			"request_user": userID,
		}).Warn("User is not the author of the comment")
		return nil, comments.ErrCommentNotFound
	}

	now := s.utils.Now()
	if err := repo.Comments.UpdateComment(ctx, id, req.Content, now); err != nil {
		if errors.Is(err, comments.ErrCommentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", comments.ErrUpdateComment, err)
	}

	existing.Content = req.Content
	existing.UpdatedAt = &now

	resp := makeCommentResponse(existing, userID)
	return &resp, nil
}

// DeleteComment soft-deletes when the caller is the commenter or the blog's author.
func (s *commentsService) DeleteComment(ctx context.Context, id, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.commentsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	existing, err := repo.Comments.GetCommentByID(ctx, id)
	if err != nil {
		return err
	}

	if !existing.CanBeManagedBy(userID) {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"comment_id":   id,
			"request_user": userID,
		}).Warn("User may not delete the comment")
		return comments.ErrCommentNotFound
	}

	if err := repo.Comments.SoftDeleteComment(ctx, id, *entity.NewDeletionRecord(s.utils.Now(), userID)); err != nil {
		if errors.Is(err, comments.ErrCommentNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", comments.ErrDeleteComment, err)
	}

	return nil
}

// ListComments returns active comments of a blog the viewer can see, oldest first.
func (s *commentsService) ListComments(ctx context.Context, blogID, viewerID string) ([]comments.CommentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.commentsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	blog, err := repo.Blogs.GetBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if !blog.VisibleTo(viewerID) {
		return nil, comments.ErrBlogNotFound
	}

	return s.list(ctx, repo.Comments.ListComments, blogID, viewerID)
}

// ListCommentsForAuthor is empty unless the requester wrote the blog.
func (s *commentsService) ListCommentsForAuthor(ctx context.Context, blogID, requesterID string) ([]comments.CommentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.commentsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	blog, err := repo.Blogs.GetBlog(ctx, blogID)
	if err != nil {
		if errors.Is(err, comments.ErrBlogNotFound) {
			return []comments.CommentResponse{}, nil
		}
		return nil, err
	}

	if !blog.IsOwnedBy(requesterID) {
		return []comments.CommentResponse{}, nil
	}

	return s.list(ctx, repo.Comments.ListComments, blogID, requesterID)
}

func (s *commentsService) CountComments(ctx context.Context, blogID string) (int, error) {
	repo, err := s.commentsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return 0, err
	}

	return repo.Comments.CountComments(ctx, blogID)
}

func (s *commentsService) list(
	ctx context.Context,
	fetch func(ctx context.Context, blogID string) ([]entity.Comment, error),
	blogID, viewerID string,
) ([]comments.CommentResponse, error) {
	list, err := fetch(ctx, blogID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"blog_id":    blogID,
			"error":      err.Error(),
		}).Error("Failed to list comments")
		return nil, err
	}

	out := make([]comments.CommentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, makeCommentResponse(c, viewerID))
	}
	return out, nil
}

func makeCommentResponse(c entity.Comment, viewerID string) comments.CommentResponse {
	return comments.CommentResponse{
		ID:        c.ID,
		BlogID:    c.BlogID,
		BlogTitle: c.BlogTitle,
		UserID:    c.UserID,
		UserName:  c.UserName,
		UserEmail: c.UserEmail,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		IsOwner:   viewerID != "" && c.UserID == viewerID,
		CanEdit:   c.CanBeManagedBy(viewerID),
	}
}
