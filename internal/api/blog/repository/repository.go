package blogRepository

import (
	"time"

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
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Blogs:      &blogsRepository{q: sqlExecutor, log: r.log},
		Categories: &categoriesRepository{q: sqlExecutor, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Client struct {
	Blogs interface {
		CreateBlog(ctx context.Context, blog entity.Blog) error
		// GetBlogByID also returns soft-deleted rows; GetBlogBySlug does not.
		GetBlogByID(ctx context.Context, id string) (entity.Blog, error)
		GetBlogBySlug(ctx context.Context, slug string) (entity.Blog, error)
		ListBlogs(ctx context.Context, filter entity.BlogFilter) ([]entity.Blog, int, error)
		UpdateBlog(ctx context.Context, blog entity.Blog) error
		SetPublished(ctx context.Context, id string, published bool, at time.Time) error
		SoftDeleteBlog(ctx context.Context, id string, deletion entity.DeletionRecord) error
		RestoreBlog(ctx context.Context, id, slug string, at time.Time) error
		IncrementViewCount(ctx context.Context, id string) (bool, error)
		SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	}

	Categories interface {
		ResolveActiveCategories(ctx context.Context, ids []string) ([]entity.Category, error)
		ReplaceBlogCategories(ctx context.Context, blogID string, categoryIDs []string) error
		GetCategoriesForBlogs(ctx context.Context, blogIDs []string) (map[string][]entity.Category, error)
	}

	Commit   func() error
	Rollback func() error
}

type blogsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type categoriesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
