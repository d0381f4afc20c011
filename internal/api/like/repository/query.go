package likeRepository

const (
	queryGetBlogForUpdate = `
		SELECT
			id,
			title,
			author_id,
			is_published,
			is_deleted,
			like_count
		FROM blogs
		WHERE id = :id
		FOR UPDATE
	`

	queryGetBlog = `
		SELECT
			id,
			title,
			author_id,
			is_published,
			is_deleted,
			like_count
		FROM blogs
		WHERE id = :id
	`

	queryAdjustLikeCount = `
		UPDATE blogs
		SET like_count = GREATEST(like_count + :delta, 0)
		WHERE id = :id
		RETURNING like_count
	`

	queryCreateLike = `
		INSERT INTO blog_likes (
			id,
			blog_id,
			user_id,
			liked_at
		) VALUES (
			:id,
			:blog_id,
			:user_id,
			:liked_at
		)
		ON CONFLICT (blog_id, user_id) DO NOTHING
	`

	queryDeleteLike = `
		DELETE FROM blog_likes
		WHERE blog_id = :blog_id AND user_id = :user_id
	`

	queryIsLiked = `
		SELECT EXISTS (
			SELECT 1 FROM blog_likes
			WHERE blog_id = :blog_id AND user_id = :user_id
		)
	`

	queryCountLikes = `
		SELECT COUNT(*)
		FROM blog_likes
		WHERE blog_id = :blog_id
	`

	queryListLikes = `
		SELECT
			l.id,
			l.blog_id,
			b.title AS blog_title,
			l.user_id,
			u.name AS user_name,
			u.email AS user_email,
			l.liked_at
		FROM blog_likes l
		JOIN blogs b ON b.id = l.blog_id
		JOIN users u ON u.id = l.user_id
		WHERE l.blog_id = :blog_id
		ORDER BY l.liked_at DESC
	`

	queryLikedBlogIDs = `
		SELECT blog_id
		FROM blog_likes
		WHERE user_id = :user_id AND blog_id = ANY(:blog_ids)
	`
)
