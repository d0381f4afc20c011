package likeRepository

import (
	"context"
	"database/sql"
	"errors"

	"BlogPublisher/internal/api/like"
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
	LikeCount   int            `db:"like_count"`
}

func (r *blogsRepository) GetBlogForUpdate(ctx context.Context, id string) (entity.Blog, error) {
	return r.getBlog(ctx, queryGetBlogForUpdate, id, "GetBlogForUpdate")
}

func (r *blogsRepository) GetBlog(ctx context.Context, id string) (entity.Blog, error) {
	return r.getBlog(ctx, queryGetBlog, id, "GetBlog")
}

func (r *blogsRepository) getBlog(ctx context.Context, namedQuery, id, op string) (entity.Blog, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var blog BlogDB

	query, args, err := sqlx.Named(namedQuery, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return entity.Blog{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&blog); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"blog_id":    id,
			}).Warn(op + " no rows found")
			return entity.Blog{}, likes.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.Blog{}, err
	}

	return r.makeBlog(blog), nil
}

func (r *blogsRepository) AdjustLikeCount(ctx context.Context, id string, delta int) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var likeCount int

	query, args, err := sqlx.Named(queryAdjustLikeCount, map[string]interface{}{
		"id":    id,
		"delta": delta,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("AdjustLikeCount named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&likeCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, likes.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"blog_id":    id,
			"error":      err.Error(),
		}).Error("AdjustLikeCount execution err")
		return 0, err
	}

	return likeCount, nil
}

func (r *blogsRepository) makeBlog(blog BlogDB) entity.Blog {
	out := entity.Blog{
		ID:          blog.ID.String,
		Title:       blog.Title.String,
		AuthorID:    blog.AuthorID.String,
		IsPublished: blog.IsPublished,
		LikeCount:   blog.LikeCount,
	}
	if blog.IsDeleted {
		out.Deletion = &entity.DeletionRecord{}
	}
	return out
}
