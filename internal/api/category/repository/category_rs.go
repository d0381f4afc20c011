package categoryRepository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"BlogPublisher/internal/api/category"
	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type CategoryDB struct {
	ID          sql.NullString `db:"id"`
	Name        sql.NullString `db:"name"`
	Description sql.NullString `db:"description"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	CreatedBy   sql.NullString `db:"created_by"`
	UpdatedAt   sql.NullTime   `db:"updated_at"`
	UpdatedBy   sql.NullString `db:"updated_by"`
	IsDeleted   bool           `db:"is_deleted"`
	DeletedAt   sql.NullTime   `db:"deleted_at"`
	DeletedBy   sql.NullString `db:"deleted_by"`
}

func (r *categoriesRepository) CreateCategory(ctx context.Context, category entity.Category) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
		"is_active":   category.IsActive,
		"created_at":  category.CreatedAt,
		"created_by":  category.CreatedBy,
	}

	query, args, err := sqlx.Named(queryCreateCategory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCategory")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return categories.ErrCategoryNameTaken
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating category")
		return err
	}

	return nil
}

func (r *categoriesRepository) GetCategoryByID(ctx context.Context, id string) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var category CategoryDB

	query, args, err := sqlx.Named(queryGetCategoryByID, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryByID named query preparation err")
		return entity.Category{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": id,
			}).Warn("GetCategoryByID no rows found")
			return entity.Category{}, categories.ErrCategoryNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryByID execution err")
		return entity.Category{}, err
	}

	return r.makeCategory(category), nil
}

func (r *categoriesRepository) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []CategoryDB

	if err := r.q.SelectContext(ctx, &rows, r.q.Rebind(queryGetAllCategories)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllCategories execution err")
		return nil, err
	}

	return r.makeCategories(rows), nil
}

func (r *categoriesRepository) GetPagedCategories(ctx context.Context, filter entity.CategoryFilter) ([]entity.Category, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []CategoryDB
	var total int

	term := strings.ToLower(strings.TrimSpace(filter.Filter))
	argsKV := map[string]interface{}{
		"filter":  term,
		"pattern": "%" + likeEscaper.Replace(term) + "%",
		"limit":   filter.Limit,
		"offset":  filter.Skip,
	}

	countQuery, countArgs, err := sqlx.Named(queryCountPagedCategories, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountPagedCategories named query preparation err")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountPagedCategories execution err")
		return nil, 0, err
	}

	query, args, err := sqlx.Named(queryGetPagedCategories+orderCategories(filter.Sorting)+`
		LIMIT :limit OFFSET :offset`, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPagedCategories named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPagedCategories execution err")
		return nil, 0, err
	}

	return r.makeCategories(rows), total, nil
}

func (r *categoriesRepository) UpdateCategory(ctx context.Context, category entity.Category) error {
	var updatedAt interface{}
	if category.UpdatedAt != nil {
		updatedAt = *category.UpdatedAt
	}

	return r.execAffecting(ctx, queryUpdateCategory, map[string]interface{}{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
		"is_active":   category.IsActive,
		"updated_at":  updatedAt,
		"updated_by":  category.UpdatedBy,
	}, "UpdateCategory")
}

func (r *categoriesRepository) SoftDeleteCategory(ctx context.Context, id string, deletion entity.DeletionRecord) error {
	return r.execAffecting(ctx, querySoftDeleteCategory, map[string]interface{}{
		"id":         id,
		"deleted_at": deletion.At,
		"deleted_by": deletion.By,
	}, "SoftDeleteCategory")
}

func (r *categoriesRepository) RestoreCategory(ctx context.Context, id, actorID string, at time.Time) error {
	return r.execAffecting(ctx, queryRestoreCategory, map[string]interface{}{
		"id":         id,
		"updated_at": at,
		"updated_by": actorID,
	}, "RestoreCategory")
}

func (r *categoriesRepository) NameExists(ctx context.Context, name, excludeID string) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var exists bool

	query, args, err := sqlx.Named(queryCategoryNameExists, map[string]interface{}{
		"name":       strings.TrimSpace(name),
		"exclude_id": excludeID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("NameExists named query preparation err")
		return false, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&exists); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("NameExists execution err")
		return false, err
	}

	return exists, nil
}

func (r *categoriesRepository) execAffecting(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) error {
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
		if isUniqueViolation(err) {
			return categories.ErrCategoryNameTaken
		}
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
		return categories.ErrCategoryNotFound
	}

	return nil
}

// orderCategories maps "name", "createdAt" and their "-" prefixed forms to an ORDER BY clause.
func orderCategories(sorting string) string {
	sorting = strings.TrimSpace(sorting)
	direction := "ASC"
	if strings.HasPrefix(sorting, "-") {
		direction = "DESC"
		sorting = strings.TrimPrefix(sorting, "-")
	}

	column, ok := categorySortColumns[sorting]
	if !ok {
		column, direction = categorySortColumns["name"], "ASC"
	}

	return "\n\t\tORDER BY " + column + " " + direction + ", id ASC"
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *categoriesRepository) makeCategories(rows []CategoryDB) []entity.Category {
	out := make([]entity.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.makeCategory(row))
	}
	return out
}

func (r *categoriesRepository) makeCategory(category CategoryDB) entity.Category {
	out := entity.Category{
		ID:          category.ID.String,
		Name:        category.Name.String,
		Description: category.Description.String,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
		CreatedBy:   category.CreatedBy.String,
		UpdatedBy:   category.UpdatedBy.String,
	}
	if category.UpdatedAt.Valid {
		updatedAt := category.UpdatedAt.Time
		out.UpdatedAt = &updatedAt
	}
	if category.IsDeleted {
		out.Deletion = entity.NewDeletionRecord(category.DeletedAt.Time, category.DeletedBy.String)
	}
	return out
}
