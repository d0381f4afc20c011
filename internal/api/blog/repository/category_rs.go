package blogRepository

import (
	"context"
	"database/sql"

	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type CategoryDB struct {
	BlogID      sql.NullString `db:"blog_id"`
	ID          sql.NullString `db:"id"`
	Name        sql.NullString `db:"name"`
	Description sql.NullString `db:"description"`
	IsActive    bool           `db:"is_active"`
}

// ResolveActiveCategories returns the non-deleted categories among ids; unknown ids are skipped.
func (r *categoriesRepository) ResolveActiveCategories(ctx context.Context, ids []string) ([]entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []CategoryDB

	if len(ids) == 0 {
		return []entity.Category{}, nil
	}

	query, args, err := sqlx.Named(queryResolveActiveCategories, map[string]interface{}{
		"ids": pq.Array(ids),
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ResolveActiveCategories named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ResolveActiveCategories execution err")
		return nil, err
	}

	out := make([]entity.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.makeCategory(row))
	}
	return out, nil
}

// ReplaceBlogCategories overwrites the blog's category links. Run it inside a transaction.
func (r *categoriesRepository) ReplaceBlogCategories(ctx context.Context, blogID string, categoryIDs []string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteBlogCategories, map[string]interface{}{
		"blog_id": blogID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteBlogCategories named query preparation err")
		return err
	}

	if _, err := r.q.ExecContext(ctx, r.q.Rebind(query), args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"blog_id":    blogID,
			"error":      err.Error(),
		}).Error("DeleteBlogCategories execution err")
		return err
	}

	for _, categoryID := range categoryIDs {
		query, args, err := sqlx.Named(queryInsertBlogCategory, map[string]interface{}{
			"blog_id":     blogID,
			"category_id": categoryID,
		})
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("InsertBlogCategory named query preparation err")
			return err
		}

		if _, err := r.q.ExecContext(ctx, r.q.Rebind(query), args...); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"blog_id":     blogID,
				"category_id": categoryID,
				"error":       err.Error(),
			}).Error("InsertBlogCategory execution err")
			return err
		}
	}

	return nil
}

// GetCategoriesForBlogs loads the categories of many blogs in one query, keyed by blog id.
func (r *categoriesRepository) GetCategoriesForBlogs(ctx context.Context, blogIDs []string) (map[string][]entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []CategoryDB

	out := make(map[string][]entity.Category, len(blogIDs))
	if len(blogIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.Named(queryGetCategoriesForBlogs, map[string]interface{}{
		"blog_ids": pq.Array(blogIDs),
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoriesForBlogs named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoriesForBlogs execution err")
		return nil, err
	}

	for _, row := range rows {
		out[row.BlogID.String] = append(out[row.BlogID.String], r.makeCategory(row))
	}
	return out, nil
}

func (r *categoriesRepository) makeCategory(row CategoryDB) entity.Category {
	return entity.Category{
		ID:          row.ID.String,
		Name:        row.Name.String,
		Description: row.Description.String,
		IsActive:    row.IsActive,
	}
}
