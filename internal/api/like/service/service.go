package likeService

import (
	"context"

	"BlogPublisher/internal/api/like"
	likeRepository "BlogPublisher/internal/api/like/repository"
	"BlogPublisher/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var likeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "blog_like_toggles_total",
	Help: "Number of like toggles by resulting action.",
}, []string{"action"})

type ILikesService interface {
	ToggleLike(ctx context.Context, blogID, userID string) (*likes.ToggleLikeResponse, error)
	IsLiked(ctx context.Context, blogID, userID string) (bool, error)
	CountLikes(ctx context.Context, blogID string) (int, error)
	ListLikes(ctx context.Context, blogID, requesterID string) ([]likes.LikeResponse, error)
	LikedBlogIDs(ctx context.Context, userID string, blogIDs []string) (map[string]bool, error)
}

type likesService struct {
	log       *logrus.Logger
	likesRepo likeRepository.Repository
	utils     utils.IUtils
}

func NewLikesService(
	log *logrus.Logger,
	likesRepo likeRepository.Repository,
	utils utils.IUtils,
) ILikesService {
	return &likesService{
		log:       log,
		likesRepo: likesRepo,
		utils:     utils,
	}
}
