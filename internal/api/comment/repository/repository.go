package commentRepository

import (
	"BlogPublisher/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
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
		Comments: &commentsRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Blogs interface {
		GetBlog(ctx context.Context, id string) (entity.Blog, error)
	}

	Comments interface {
		CreateComment(ctx context.Context, comment entity.Comment) error
		GetCommentByID(ctx context.Context, id string) (entity.Comment, error)
		ListComments(ctx context.Context, blogID string) ([]entity.Comment, error)
		UpdateComment(ctx context.Context, id, content string, updatedAt time.Time) error
		SoftDeleteComment(ctx context.Context, id string, deletion entity.DeletionRecord) error
		CountComments(ctx context.Context, blogID string) (int, error)
	}

	Commit   func() error
	Rollback func() error
}

type blogsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type commentsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
