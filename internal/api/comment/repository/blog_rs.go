package commentRepository

import (
	"context"
	"database/sql"
	"errors"

	"BlogPublisher/internal/api/comment"
	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type BlogDB struct {
	ID          sql.NullString `db:"id"`
	Title       sql.NullString `db:"title"`
	AuthorID    sql.NullString `db:"author_id"`
	IsPublished bool           `db:"is_published"`
	IsDeleted   bool           `db:"is_deleted"`
}

func (r *blogsRepository) GetBlog(ctx context.Context, id string) (entity.Blog, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var blog BlogDB

	query, args, err := sqlx.Named(queryGetBlog, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBlog named query preparation err")
		return entity.Blog{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&blog); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"blog_id":    id,
			}).Warn("GetBlog no rows found")
			return entity.Blog{}, comments.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBlog execution err")
		return entity.Blog{}, err
	}

	out := entity.Blog{
		ID:          blog.ID.String,
		Title:       blog.Title.String,
		AuthorID:    blog.AuthorID.String,
		IsPublished: blog.IsPublished,
	}
	if blog.IsDeleted {
		out.Deletion = &entity.DeletionRecord{}
	}

	return out, nil
}
