package commentRepository

const (
	queryGetBlog = `
		SELECT
			id,
			title,
			author_id,
			is_published,
			is_deleted
		FROM blogs
		WHERE id = :id
	`

	queryCreateComment = `
		INSERT INTO blog_comments (
			id,
			blog_id,
			user_id,
			content,
			created_at
		) VALUES (
			:id,
			:blog_id,
			:user_id,
			:content,
			:created_at
		)
	`

	selectComment = `
		SELECT
			c.id,
			c.blog_id,
			b.title AS blog_title,
			b.author_id AS blog_author_id,
			c.user_id,
			u.name AS user_name,
			u.email AS user_email,
			c.content,
			c.created_at,
			c.updated_at,
			c.is_deleted,
			c.deleted_at,
			c.deleted_by
		FROM blog_comments c
		JOIN blogs b ON b.id = c.blog_id
		JOIN users u ON u.id = c.user_id
	`

	queryGetCommentByID = selectComment + `
		WHERE c.id = :id AND NOT c.is_deleted
	`

	queryListComments = selectComment + `
		WHERE c.blog_id = :blog_id AND NOT c.is_deleted
		ORDER BY c.created_at ASC, c.id ASC
	`

	queryUpdateComment = `
		UPDATE blog_comments
		SET
			content = :content,
			updated_at = :updated_at
		WHERE id = :id AND NOT is_deleted
	`

	querySoftDeleteComment = `
		UPDATE blog_comments
		SET
			is_deleted = TRUE,
			deleted_at = :deleted_at,
			deleted_by = :deleted_by
		WHERE id = :id AND NOT is_deleted
	`

	queryCountComments = `
		SELECT COUNT(*)
		FROM blog_comments
		WHERE blog_id = :blog_id AND NOT is_deleted
	`
)
