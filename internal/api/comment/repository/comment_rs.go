package commentRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"BlogPublisher/internal/api/comment"
	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CommentDB struct {
	ID           sql.NullString `db:"id"`
	BlogID       sql.NullString `db:"blog_id"`
	BlogTitle    sql.NullString `db:"blog_title"`
	BlogAuthorID sql.NullString `db:"blog_author_id"`
	UserID       sql.NullString `db:"user_id"`
	UserName     sql.NullString `db:"user_name"`
	UserEmail    sql.NullString `db:"user_email"`
	Content      sql.NullString `db:"content"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at"`
	IsDeleted    bool           `db:"is_deleted"`
	DeletedAt    sql.NullTime   `db:"deleted_at"`
	DeletedBy    sql.NullString `db:"deleted_by"`
}

func (r *commentsRepository) CreateComment(ctx context.Context, comment entity.Comment) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         comment.ID,
		"blog_id":    comment.BlogID,
		"user_id":    comment.UserID,
		"content":    comment.Content,
		"created_at": comment.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateComment, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateComment")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating comment")
		return err
	}

	return nil
}

func (r *commentsRepository) GetCommentByID(ctx context.Context, id string) (entity.Comment, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var comment CommentDB

	query, args, err := sqlx.Named(queryGetCommentByID, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommentByID named query preparation err")
		return entity.Comment{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&comment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"comment_id": id,
			}).Warn("GetCommentByID no rows found")
			return entity.Comment{}, comments.ErrCommentNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommentByID execution err")
		return entity.Comment{}, err
	}

	return r.makeComment(comment), nil
}

func (r *commentsRepository) ListComments(ctx context.Context, blogID string) ([]entity.Comment, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []CommentDB

	query, args, err := sqlx.Named(queryListComments, map[string]interface{}{
		"blog_id": blogID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListComments named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListComments execution err")
		return nil, err
	}

	out := make([]entity.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.makeComment(row))
	}

	return out, nil
}

func (r *commentsRepository) UpdateComment(ctx context.Context, id, content string, updatedAt time.Time) error {
	return r.execAffecting(ctx, queryUpdateComment, map[string]interface{}{
		"id":         id,
		"content":    content,
		"updated_at": updatedAt,
	}, "UpdateComment")
}

func (r *commentsRepository) SoftDeleteComment(ctx context.Context, id string, deletion entity.DeletionRecord) error {
	return r.execAffecting(ctx, querySoftDeleteComment, map[string]interface{}{
		"id":         id,
		"deleted_at": deletion.At,
		"deleted_by": deletion.By,
	}, "SoftDeleteComment")
}

func (r *commentsRepository) CountComments(ctx context.Context, blogID string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	query, args, err := sqlx.Named(queryCountComments, map[string]interface{}{
		"blog_id": blogID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountComments named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountComments execution err")
		return 0, err
	}

	return total, nil
}

// execAffecting runs a single-row mutation and maps zero affected rows to ErrCommentNotFound.
func (r *commentsRepository) execAffecting(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         argsKV["id"],
		}).Warn(op + " no rows affected")
		return comments.ErrCommentNotFound
	}

	return nil
}

func (r *commentsRepository) makeComment(comment CommentDB) entity.Comment {
	out := entity.Comment{
		ID:           comment.ID.String,
		BlogID:       comment.BlogID.String,
		BlogTitle:    comment.BlogTitle.String,
		BlogAuthorID: comment.BlogAuthorID.String,
		UserID:       comment.UserID.String,
		UserName:     comment.UserName.String,
		UserEmail:    comment.UserEmail.String,
		Content:      comment.Content.String,
		CreatedAt:    comment.CreatedAt,
	}
	if comment.UpdatedAt.Valid {
		updatedAt := comment.UpdatedAt.Time
		out.UpdatedAt = &updatedAt
	}
	if comment.IsDeleted {
		out.Deletion = entity.NewDeletionRecord(comment.DeletedAt.Time, comment.DeletedBy.String)
	}
	return out
}
