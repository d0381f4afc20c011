package blogService

import (
	"context"
	"mime/multipart"

	"BlogPublisher/internal/api/blog"
	blogRepository "BlogPublisher/internal/api/blog/repository"
	commentService "BlogPublisher/internal/api/comment/service"
	likeService "BlogPublisher/internal/api/like/service"
	"BlogPublisher/pkg/render"
	"BlogPublisher/pkg/s3"
	"BlogPublisher/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const (
	defaultPage       = 1
	defaultPageSize   = 10
	maxPageSize       = 100
	defaultShortList  = 10
	maxShortList      = 50
	maxImageSizeBytes = 10 * 1024 * 1024
)

type IBlogsService interface {
	CreateBlog(ctx context.Context, req blogs.CreateBlogRequest, authorID string) (*blogs.BlogResponse, error)
	UpdateBlog(ctx context.Context, id string, req blogs.UpdateBlogRequest, userID string) (*blogs.BlogResponse, error)
	DeleteBlog(ctx context.Context, id, userID string) error
	RestoreBlog(ctx context.Context, id, userID string) error
	PublishBlog(ctx context.Context, id, userID string) error
	UnpublishBlog(ctx context.Context, id, userID string) error
	IncrementViewCount(ctx context.Context, id string) error

	GetBlogByID(ctx context.Context, id, viewerID string) (*blogs.BlogResponse, error)
	GetBlogBySlug(ctx context.Context, slug, viewerID string) (*blogs.BlogResponse, error)
	GetAllBlogs(ctx context.Context, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error)
	GetBlogsByAuthor(ctx context.Context, authorID string, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error)
	GetBlogsByCategory(ctx context.Context, categoryID string, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error)
	SearchBlogs(ctx context.Context, term string, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error)
	GetRecentBlogs(ctx context.Context, count int, viewerID string) ([]blogs.BlogListItemResponse, error)
	GetPopularBlogs(ctx context.Context, count int, viewerID string) ([]blogs.BlogListItemResponse, error)

	BlogExists(ctx context.Context, id string) (bool, error)
	IsOwner(ctx context.Context, id, userID string) (bool, error)
	UploadImage(ctx context.Context, userID string, file *multipart.FileHeader) (*blogs.ImageUploadResponse, error)
}

type blogsService struct {
	log             *logrus.Logger
	blogsRepo       blogRepository.Repository
	likesService    likeService.ILikesService
	commentsService commentService.ICommentsService
	s3Client        s3.ItfS3
	renderer        render.IRenderer
	validator       *validator.Validate
	utils           utils.IUtils
}

func NewBlogsService(
	log *logrus.Logger,
	blogsRepo blogRepository.Repository,
	likesService likeService.ILikesService,
	commentsService commentService.ICommentsService,
	s3Client s3.ItfS3,
	renderer render.IRenderer,
	validate *validator.Validate,
	utils utils.IUtils,
) IBlogsService {
	return &blogsService{
		log:             log,
		blogsRepo:       blogsRepo,
		likesService:    likesService,
		commentsService: commentsService,
		s3Client:        s3Client,
		renderer:        renderer,
		validator:       validate,
		utils:           utils,
	}
}
