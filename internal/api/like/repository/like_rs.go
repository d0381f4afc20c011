package likeRepository

import (
	"context"
	"database/sql"
	"time"

	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type LikeDB struct {
	ID        sql.NullString `db:"id"`
	BlogID    sql.NullString `db:"blog_id"`
	BlogTitle sql.NullString `db:"blog_title"`
	UserID    sql.NullString `db:"user_id"`
	UserName  sql.NullString `db:"user_name"`
	UserEmail sql.NullString `db:"user_email"`
	LikedAt   time.Time      `db:"liked_at"`
}

// CreateLike reports false when the (blog, user) pair already had a like.
func (r *likesRepository) CreateLike(ctx context.Context, like entity.Like) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":       like.ID,
		"blog_id":  like.BlogID,
		"user_id":  like.UserID,
		"liked_at": like.LikedAt,
	}

	query, args, err := sqlx.Named(queryCreateLike, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateLike")
		return false, err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating like")
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *likesRepository) DeleteLike(ctx context.Context, blogID, userID string) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteLike, map[string]interface{}{
		"blog_id": blogID,
		"user_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteLike named query preparation err")
		return false, err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteLike execution err")
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *likesRepository) IsLiked(ctx context.Context, blogID, userID string) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var liked bool

	query, args, err := sqlx.Named(queryIsLiked, map[string]interface{}{
		"blog_id": blogID,
		"user_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("IsLiked named query preparation err")
		return false, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&liked); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("IsLiked execution err")
		return false, err
	}

	return liked, nil
}

func (r *likesRepository) CountLikes(ctx context.Context, blogID string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	query, args, err := sqlx.Named(queryCountLikes, map[string]interface{}{
		"blog_id": blogID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountLikes named query preparation err")
		return 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountLikes execution err")
		return 0, err
	}

	return total, nil
}

func (r *likesRepository) ListLikes(ctx context.Context, blogID string) ([]entity.Like, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []LikeDB

	query, args, err := sqlx.Named(queryListLikes, map[string]interface{}{
		"blog_id": blogID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListLikes named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListLikes execution err")
		return nil, err
	}

	out := make([]entity.Like, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.makeLike(row))
	}

	return out, nil
}

func (r *likesRepository) LikedBlogIDs(ctx context.Context, userID string, blogIDs []string) ([]string, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var ids []string

	if userID == "" || len(blogIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.Named(queryLikedBlogIDs, map[string]interface{}{
		"user_id":  userID,
		"blog_ids": pq.Array(blogIDs),
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("LikedBlogIDs named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &ids, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("LikedBlogIDs execution err")
		return nil, err
	}

	return ids, nil
}

func (r *likesRepository) makeLike(like LikeDB) entity.Like {
	return entity.Like{
		ID:        like.ID.String,
		BlogID:    like.BlogID.String,
		BlogTitle: like.BlogTitle.String,
		UserID:    like.UserID.String,
		UserName:  like.UserName.String,
		UserEmail: like.UserEmail.String,
		LikedAt:   like.LikedAt,
	}
}
