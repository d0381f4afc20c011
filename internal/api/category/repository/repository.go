package categoryRepository

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
		Categories: &categoriesRepository{q: sqlExecutor, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Client struct {
	Categories interface {
		CreateCategory(ctx context.Context, category entity.Category) error
		// GetCategoryByID also returns soft-deleted rows; callers check IsDeleted.
		GetCategoryByID(ctx context.Context, id string) (entity.Category, error)
		GetAllCategories(ctx context.Context) ([]entity.Category, error)
		GetPagedCategories(ctx context.Context, filter entity.CategoryFilter) ([]entity.Category, int, error)
		UpdateCategory(ctx context.Context, category entity.Category) error
		SoftDeleteCategory(ctx context.Context, id string, deletion entity.DeletionRecord) error
		RestoreCategory(ctx context.Context, id, actorID string, at time.Time) error
		NameExists(ctx context.Context, name, excludeID string) (bool, error)
	}

	Commit   func() error
	Rollback func() error
}

type categoriesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
