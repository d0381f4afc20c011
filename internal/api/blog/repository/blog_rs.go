package blogRepository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"BlogPublisher/internal/api/blog"
	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var blogOrderClauses = map[entity.BlogSortBy]string{
	entity.SortLatest:        "b.created_at DESC",
	entity.SortMostLiked:     "b.like_count DESC, b.created_at DESC",
	entity.SortMostViewed:    "b.view_count DESC, b.created_at DESC",
	entity.SortMostDiscussed: "comment_count DESC, b.created_at DESC",
	entity.SortRecent:        "COALESCE(b.published_at, b.created_at) DESC",
	entity.SortPopular:       "b.view_count DESC, b.like_count DESC",
}

type BlogDB struct {
	ID                sql.NullString `db:"id"`
	Title             sql.NullString `db:"title"`
	Content           sql.NullString `db:"content"`
	Summary           sql.NullString `db:"summary"`
	FeaturedImageURL  sql.NullString `db:"featured_image_url"`
	MetaDescription   sql.NullString `db:"meta_description"`
	AuthorID          sql.NullString `db:"author_id"`
	AuthorName        sql.NullString `db:"author_name"`
	AuthorEmail       sql.NullString `db:"author_email"`
	IsPublished       bool           `db:"is_published"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         sql.NullTime   `db:"updated_at"`
	PublishedAt       sql.NullTime   `db:"published_at"`
	IsDeleted         bool           `db:"is_deleted"`
	DeletedAt         sql.NullTime   `db:"deleted_at"`
	DeletedBy         sql.NullString `db:"deleted_by"`
	Slug              sql.NullString `db:"slug"`
	ViewCount         int            `db:"view_count"`
	LikeCount         int            `db:"like_count"`
	EstimatedReadTime int            `db:"estimated_read_time"`
	CommentCount      int            `db:"comment_count"`
}

func (r *blogsRepository) CreateBlog(ctx context.Context, blog entity.Blog) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":                  blog.ID,
		"title":               blog.Title,
		"content":             blog.Content,
		"summary":             blog.Summary,
		"featured_image_url":  blog.FeaturedImageURL,
		"meta_description":    blog.MetaDescription,
		"author_id":           blog.AuthorID,
		"is_published":        blog.IsPublished,
		"created_at":          blog.CreatedAt,
		"published_at":        blog.PublishedAt,
		"slug":                blog.Slug,
		"estimated_read_time": blog.EstimatedReadTime,
	}

	query, args, err := sqlx.Named(queryCreateBlog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateBlog")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return blogs.ErrSlugUnavailable
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating blog")
		return err
	}

	return nil
}

func (r *blogsRepository) GetBlogByID(ctx context.Context, id string) (entity.Blog, error) {
	return r.getBlog(ctx, queryGetBlogByID, map[string]interface{}{"id": id}, "GetBlogByID")
}

func (r *blogsRepository) GetBlogBySlug(ctx context.Context, slug string) (entity.Blog, error) {
	return r.getBlog(ctx, queryGetBlogBySlug, map[string]interface{}{"slug": slug}, "GetBlogBySlug")
}

func (r *blogsRepository) getBlog(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) (entity.Blog, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var blog BlogDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
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
				"args":       argsKV,
			}).Warn(op + " no rows found")
			return entity.Blog{}, blogs.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.Blog{}, err
	}

	return r.makeBlog(blog), nil
}

// ListBlogs returns one page of blogs visible to filter.ViewerID and the total count across all pages.
func (r *blogsRepository) ListBlogs(ctx context.Context, filter entity.BlogFilter) ([]entity.Blog, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var blogsList []BlogDB
	var total int

	categoryIDs := filter.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = []string{}
	}

	search := strings.TrimSpace(filter.SearchTerm)
	argsKV := map[string]interface{}{
		"viewer_id":    filter.ViewerID,
		"author_id":    filter.AuthorID,
		"search":       search,
		"pattern":      "%" + likeEscaper.Replace(search) + "%",
		"category_ids": pq.Array(categoryIDs),
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	}

	countQuery, countArgs, err := sqlx.Named(queryCountBlogs, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountBlogs named query preparation err")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountBlogs execution err")
		return nil, 0, err
	}

	query, args, err := sqlx.Named(queryListBlogs+orderBlogs(filter.SortBy)+"\n\t\tLIMIT :limit OFFSET :offset", argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListBlogs named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &blogsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListBlogs execution err")
		return nil, 0, err
	}

	list := make([]entity.Blog, 0, len(blogsList))
	for _, blogDB := range blogsList {
		list = append(list, r.makeBlog(blogDB))
	}

	return list, total, nil
}

func (r *blogsRepository) UpdateBlog(ctx context.Context, blog entity.Blog) error {
	_, err := r.execAffecting(ctx, queryUpdateBlog, map[string]interface{}{
		"id":                  blog.ID,
		"title":               blog.Title,
		"content":             blog.Content,
		"summary":             blog.Summary,
		"featured_image_url":  blog.FeaturedImageURL,
		"meta_description":    blog.MetaDescription,
		"is_published":        blog.IsPublished,
		"published_at":        blog.PublishedAt,
		"updated_at":          blog.UpdatedAt,
		"slug":                blog.Slug,
		"estimated_read_time": blog.EstimatedReadTime,
	}, "UpdateBlog")
	return err
}

// SetPublished never overwrites an existing published_at.
func (r *blogsRepository) SetPublished(ctx context.Context, id string, published bool, at time.Time) error {
	var publishedAt *time.Time
	if published {
		publishedAt = &at
	}

	_, err := r.execAffecting(ctx, querySetPublished, map[string]interface{}{
		"id":           id,
		"is_published": published,
		"published_at": publishedAt,
		"updated_at":   at,
	}, "SetPublished")
	return err
}

func (r *blogsRepository) SoftDeleteBlog(ctx context.Context, id string, deletion entity.DeletionRecord) error {
	_, err := r.execAffecting(ctx, querySoftDeleteBlog, map[string]interface{}{
		"id":         id,
		"deleted_at": deletion.At,
		"deleted_by": deletion.By,
	}, "SoftDeleteBlog")
	return err
}

func (r *blogsRepository) RestoreBlog(ctx context.Context, id, slug string, at time.Time) error {
	_, err := r.execAffecting(ctx, queryRestoreBlog, map[string]interface{}{
		"id":         id,
		"slug":       slug,
		"updated_at": at,
	}, "RestoreBlog")
	return err
}

// IncrementViewCount reports false when the blog is missing, deleted or unpublished.
func (r *blogsRepository) IncrementViewCount(ctx context.Context, id string) (bool, error) {
	_, err := r.execAffecting(ctx, queryIncrementViewCount, map[string]interface{}{
		"id": id,
	}, "IncrementViewCount")
	if errors.Is(err, blogs.ErrBlogNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *blogsRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var exists bool

	query, args, err := sqlx.Named(querySlugExists, map[string]interface{}{
		"slug":       slug,
		"exclude_id": excludeID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SlugExists named query preparation err")
		return false, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&exists); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       slug,
			"error":      err.Error(),
		}).Error("SlugExists execution err")
		return false, err
	}

	return exists, nil
}

// execAffecting maps zero affected rows to ErrBlogNotFound and a slug collision to ErrSlugUnavailable.
func (r *blogsRepository) execAffecting(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) (int64, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, blogs.ErrSlugUnavailable
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " rows affected err")
		return 0, err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         argsKV["id"],
		}).Warn(op + " no rows affected")
		return 0, blogs.ErrBlogNotFound
	}

	return rowsAffected, nil
}

func (r *blogsRepository) makeBlog(blog BlogDB) entity.Blog {
	out := entity.Blog{
		ID:                blog.ID.String,
		Title:             blog.Title.String,
		Content:           blog.Content.String,
		Summary:           blog.Summary.String,
		FeaturedImageURL:  blog.FeaturedImageURL.String,
		MetaDescription:   blog.MetaDescription.String,
		AuthorID:          blog.AuthorID.String,
		AuthorName:        blog.AuthorName.String,
		AuthorEmail:       blog.AuthorEmail.String,
		IsPublished:       blog.IsPublished,
		CreatedAt:         blog.CreatedAt,
		Slug:              blog.Slug.String,
		ViewCount:         blog.ViewCount,
		LikeCount:         blog.LikeCount,
		CommentCount:      blog.CommentCount,
		EstimatedReadTime: blog.EstimatedReadTime,
	}
	if blog.UpdatedAt.Valid {
		out.UpdatedAt = &blog.UpdatedAt.Time
	}
	if blog.PublishedAt.Valid {
		out.PublishedAt = &blog.PublishedAt.Time
	}
	if blog.IsDeleted {
		out.Deletion = entity.NewDeletionRecord(blog.DeletedAt.Time, blog.DeletedBy.String)
	}
	return out
}

func orderBlogs(sortBy entity.BlogSortBy) string {
	clause, ok := blogOrderClauses[sortBy]
	if !ok {
		clause = blogOrderClauses[entity.SortLatest]
	}
	return "\n\t\tORDER BY " + clause + ", b.id DESC"
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
