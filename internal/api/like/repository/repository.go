package likeRepository

import (
	"BlogPublisher/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor = r.DB
	commitFunc := func() error { return nil }
	rollbackFunc := func() error { return nil }

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	}

	return Client{
		Blogs:    &blogsRepository{q: sqlExecutor, log: r.log},
		Likes:    &likesRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Blogs interface {
		// GetBlogForUpdate locks the blog row until the surrounding transaction ends.
		GetBlogForUpdate(ctx context.Context, id string) (entity.Blog, error)
		GetBlog(ctx context.Context, id string) (entity.Blog, error)
		AdjustLikeCount(ctx context.Context, id string, delta int) (int, error)
	}

	Likes interface {
		CreateLike(ctx context.Context, like entity.Like) (bool, error)
		DeleteLike(ctx context.Context, blogID, userID string) (bool, error)
		IsLiked(ctx context.Context, blogID, userID string) (bool, error)
		CountLikes(ctx context.Context, blogID string) (int, error)
		ListLikes(ctx context.Context, blogID string) ([]entity.Like, error)
		LikedBlogIDs(ctx context.Context, userID string, blogIDs []string) ([]string, error)
	}

	Commit   func() error
	Rollback func() error
}

type blogsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type likesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
