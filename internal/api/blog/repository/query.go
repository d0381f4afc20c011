package blogRepository

const (
	queryCreateBlog = `
		INSERT INTO blogs (
			id,
			title,
			content,
			summary,
			featured_image_url,
			meta_description,
			author_id,
			is_published,
			created_at,
			published_at,
			slug,
			estimated_read_time
		) VALUES (
			:id,
			:title,
			:content,
			:summary,
			:featured_image_url,
			:meta_description,
			:author_id,
			:is_published,
			:created_at,
			:published_at,
			:slug,
			:estimated_read_time
		)
	`

	selectBlog = `
		SELECT
			b.id,
			b.title,
			b.content,
			b.summary,
			b.featured_image_url,
			b.meta_description,
			b.author_id,
			u.name AS author_name,
			u.email AS author_email,
			b.is_published,
			b.created_at,
			b.updated_at,
			b.published_at,
			b.is_deleted,
			b.deleted_at,
			b.deleted_by,
			b.slug,
			b.view_count,
			b.like_count,
			b.estimated_read_time,
			(
				SELECT COUNT(*)
				FROM blog_comments c
				WHERE c.blog_id = b.id AND NOT c.is_deleted
			) AS comment_count
		FROM blogs b
		JOIN users u ON u.id = b.author_id
	`

	queryGetBlogByID = selectBlog + `
		WHERE b.id = :id
	`

	queryGetBlogBySlug = selectBlog + `
		WHERE b.slug = :slug AND NOT b.is_deleted
	`

	listBlogsFilter = `
		WHERE NOT b.is_deleted
			AND (b.is_published OR b.author_id = :viewer_id)
			AND (:author_id = '' OR b.author_id = :author_id)
			AND (
				:search = ''
				OR b.title ILIKE :pattern
				OR b.content ILIKE :pattern
				OR COALESCE(b.summary, '') ILIKE :pattern
				OR EXISTS (
					SELECT 1
					FROM blog_categories sc
					JOIN categories sct ON sct.id = sc.category_id
					WHERE sc.blog_id = b.id AND NOT sct.is_deleted AND sct.name ILIKE :pattern
				)
			)
			AND (
				cardinality(CAST(:category_ids AS TEXT[])) = 0
				OR EXISTS (
					SELECT 1
					FROM blog_categories bc
					WHERE bc.blog_id = b.id AND bc.category_id = ANY(:category_ids)
				)
			)
	`

	queryListBlogs = selectBlog + listBlogsFilter

	queryCountBlogs = `
		SELECT COUNT(*)
		FROM blogs b
	` + listBlogsFilter

	queryUpdateBlog = `
		UPDATE blogs
		SET
			title = :title,
			content = :content,
			summary = :summary,
			featured_image_url = :featured_image_url,
			meta_description = :meta_description,
			is_published = :is_published,
			published_at = :published_at,
			updated_at = :updated_at,
			slug = :slug,
			estimated_read_time = :estimated_read_time
		WHERE id = :id AND NOT is_deleted
	`

	querySetPublished = `
		UPDATE blogs
		SET
			is_published = :is_published,
			published_at = COALESCE(published_at, :published_at),
			updated_at = :updated_at
		WHERE id = :id AND NOT is_deleted
	`

	querySoftDeleteBlog = `
		UPDATE blogs
		SET
			is_deleted = TRUE,
			deleted_at = :deleted_at,
			deleted_by = :deleted_by
		WHERE id = :id AND NOT is_deleted
	`

	queryRestoreBlog = `
		UPDATE blogs
		SET
			is_deleted = FALSE,
			deleted_at = NULL,
			deleted_by = NULL,
			slug = :slug,
			updated_at = :updated_at
		WHERE id = :id AND is_deleted
	`

	queryIncrementViewCount = `
		UPDATE blogs
		SET view_count = view_count + 1
		WHERE id = :id AND is_published AND NOT is_deleted
	`

	querySlugExists = `
		SELECT EXISTS (
			SELECT 1
			FROM blogs
			WHERE slug = :slug AND NOT is_deleted AND id <> :exclude_id
		)
	`

	queryResolveActiveCategories = `
		SELECT
			id,
			name,
			description,
			is_active
		FROM categories
		WHERE id = ANY(:ids) AND NOT is_deleted
		ORDER BY LOWER(name) ASC
	`

	queryDeleteBlogCategories = `
		DELETE FROM blog_categories
		WHERE blog_id = :blog_id
	`

	queryInsertBlogCategory = `
		INSERT INTO blog_categories (
			blog_id,
			category_id
		) VALUES (
			:blog_id,
			:category_id
		)
		ON CONFLICT DO NOTHING
	`

	queryGetCategoriesForBlogs = `
		SELECT
			bc.blog_id,
			c.id,
			c.name,
			c.description,
			c.is_active
		FROM blog_categories bc
		JOIN categories c ON c.id = bc.category_id
		WHERE bc.blog_id = ANY(:blog_ids) AND NOT c.is_deleted
		ORDER BY LOWER(c.name) ASC
	`
)
