package commentService

import (
	"context"

	"BlogPublisher/internal/api/comment"
	commentRepository "BlogPublisher/internal/api/comment/repository"
	"BlogPublisher/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type ICommentsService interface {
	CreateComment(ctx context.Context, blogID, userID string, req comments.CommentRequest) (*comments.CommentResponse, error)
	UpdateComment(ctx context.Context, id, userID string, req comments.CommentRequest) (*comments.CommentResponse, error)
	DeleteComment(ctx context.Context, id, userID string) error
	ListComments(ctx context.Context, blogID, viewerID string) ([]comments.CommentResponse, error)
	ListCommentsForAuthor(ctx context.Context, blogID, requesterID string) ([]comments.CommentResponse, error)
	CountComments(ctx context.Context, blogID string) (int, error)
}

type commentsService struct {
	log          *logrus.Logger
	commentsRepo commentRepository.Repository
	validator    *validator.Validate
	utils        utils.IUtils
}

func NewCommentsService(
	log *logrus.Logger,
	commentsRepo commentRepository.Repository,
	validate *validator.Validate,
	utils utils.IUtils,
) ICommentsService {
	return &commentsService{
		log:          log,
		commentsRepo: commentsRepo,
		validator:    validate,
		utils:        utils,
	}
}
