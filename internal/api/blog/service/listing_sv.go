package blogService

import (
	"context"
	"errors"
	"strings"

	"BlogPublisher/internal/api/blog"
	"BlogPublisher/internal/api/comment"
	"BlogPublisher/internal/api/like"
	"BlogPublisher/internal/entity"
	contextPkg "BlogPublisher/pkg/context"
	"github.com/sirupsen/logrus"
)

// GetBlogByID returns ErrBlogNotFound unless the blog is active and published or owned by the viewer.
func (s *blogsService) GetBlogByID(ctx context.Context, id, viewerID string) (*blogs.BlogResponse, error) {
	repo, err := s.blogsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	blog, err := repo.Blogs.GetBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, blog, viewerID)
}

func (s *blogsService) GetBlogBySlug(ctx context.Context, slug, viewerID string) (*blogs.BlogResponse, error) {
	repo, err := s.blogsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	blog, err := repo.Blogs.GetBlogBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, blog, viewerID)
}

func (s *blogsService) GetAllBlogs(ctx context.Context, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
	return s.list(ctx, pagedFilter(q, viewerID))
}

func (s *blogsService) GetBlogsByAuthor(ctx context.Context, authorID string, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
	filter := pagedFilter(q, viewerID)
	filter.AuthorID = authorID
	return s.list(ctx, filter)
}

func (s *blogsService) GetBlogsByCategory(ctx context.Context, categoryID string, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
	filter := pagedFilter(q, viewerID)
	filter.CategoryIDs = []string{categoryID}
	return s.list(ctx, filter)
}

// SearchBlogs matches the term against title, content, summary and category names. An empty term lists everything.
func (s *blogsService) SearchBlogs(ctx context.Context, term string, q blogs.ListBlogsQuery, viewerID string) (*blogs.BlogListResponse, error) {
	filter := pagedFilter(q, viewerID)
	filter.SearchTerm = strings.TrimSpace(term)
	return s.list(ctx, filter)
}

func (s *blogsService) GetRecentBlogs(ctx context.Context, count int, viewerID string) ([]blogs.BlogListItemResponse, error) {
	return s.shortList(ctx, entity.SortRecent, count, viewerID)
}

func (s *blogsService) GetPopularBlogs(ctx context.Context, count int, viewerID string) ([]blogs.BlogListItemResponse, error) {
	return s.shortList(ctx, entity.SortPopular, count, viewerID)
}

func (s *blogsService) BlogExists(ctx context.Context, id string) (bool, error) {
	blog, err := s.find(ctx, id)
	if err != nil {
		if errors.Is(err, blogs.ErrBlogNotFound) {
			return false, nil
		}
		return false, err
	}
	return !blog.IsDeleted(), nil
}

func (s *blogsService) IsOwner(ctx context.Context, id, userID string) (bool, error) {
	blog, err := s.find(ctx, id)
	if err != nil {
		if errors.Is(err, blogs.ErrBlogNotFound) {
			return false, nil
		}
		return false, err
	}
	return !blog.IsDeleted() && blog.IsOwnedBy(userID), nil
}

func (s *blogsService) find(ctx context.Context, id string) (entity.Blog, error) {
	repo, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return entity.Blog{}, err
	}
	return repo.Blogs.GetBlogByID(ctx, id)
}

func (s *blogsService) shortList(ctx context.Context, sortBy entity.BlogSortBy, count int, viewerID string) ([]blogs.BlogListItemResponse, error) {
	if count <= 0 {
		count = defaultShortList
	}
	if count > maxShortList {
		count = maxShortList
	}

	resp, err := s.list(ctx, entity.BlogFilter{
		ViewerID: viewerID,
		SortBy:   sortBy,
		Limit:    count,
	})
	if err != nil {
		return nil, err
	}
	return resp.Blogs, nil
}

func (s *blogsService) list(ctx context.Context, filter entity.BlogFilter) (*blogs.BlogListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.blogsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	list, total, err := repo.Blogs.ListBlogs(ctx, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"sort_by":    filter.SortBy,
			"error":      err.Error(),
		}).Error("Failed to list blogs")
		return nil, err
	}

	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ID)
	}

	categoriesByBlog, err := repo.Categories.GetCategoriesForBlogs(ctx, ids)
	if err != nil {
		return nil, err
	}

	liked := map[string]bool{}
	if filter.ViewerID != "" && len(ids) > 0 {
		liked, err = s.likesService.LikedBlogIDs(ctx, filter.ViewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	items := make([]blogs.BlogListItemResponse, 0, len(list))
	for _, b := range list {
		b.Categories = categoriesByBlog[b.ID]
		b.IsLikedByViewer = liked[b.ID]
		items = append(items, makeBlogListItem(b))
	}

	return &blogs.BlogListResponse{
		Blogs: items,
		Total: total,
	}, nil
}

// detail builds the full view. Like and comment lists are only filled for the author.
func (s *blogsService) detail(ctx context.Context, blog entity.Blog, viewerID string) (*blogs.BlogResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !blog.VisibleTo(viewerID) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"blog_id":    blog.ID,
		}).Warn("Blog hidden from viewer")
		return nil, blogs.ErrBlogNotFound
	}

	repo, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	categoriesByBlog, err := repo.Categories.GetCategoriesForBlogs(ctx, []string{blog.ID})
	if err != nil {
		return nil, err
	}
	blog.Categories = categoriesByBlog[blog.ID]

	if viewerID != "" {
		blog.IsLikedByViewer, err = s.likesService.IsLiked(ctx, blog.ID, viewerID)
		if err != nil {
			return nil, err
		}
	}

	resp := makeBlogResponse(blog, viewerID)

	html, err := s.renderer.Markdown(blog.Content)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"blog_id":    blog.ID,
			"error":      err.Error(),
		}).Warn("Failed to render blog content")
	}
	resp.ContentHTML = html

	if blog.IsOwnedBy(viewerID) {
		resp.Comments, err = s.commentsService.ListCommentsForAuthor(ctx, blog.ID, viewerID)
		if err != nil {
			return nil, err
		}
		resp.Likes, err = s.likesService.ListLikes(ctx, blog.ID, viewerID)
		if err != nil {
			return nil, err
		}
	}

	return &resp, nil
}

func pagedFilter(q blogs.ListBlogsQuery, viewerID string) entity.BlogFilter {
	page := q.Page
	if page < 1 {
		page = defaultPage
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return entity.BlogFilter{
		ViewerID:    viewerID,
		CategoryIDs: q.CategoryIDs,
		SortBy:      entity.ParseBlogSortBy(q.SortBy),
		Limit:       limit,
		Offset:      (page - 1) * limit,
	}
}

func makeCategories(list []entity.Category) []blogs.CategoryResponse {
	out := make([]blogs.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, blogs.CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			IsActive:    c.IsActive,
		})
	}
	return out
}

func makeBlogResponse(b entity.Blog, viewerID string) blogs.BlogResponse {
	return blogs.BlogResponse{
		ID:                   b.ID,
		Title:                b.Title,
		Content:              b.Content,
		Summary:              b.Summary,
		FeaturedImageURL:     b.FeaturedImageURL,
		MetaDescription:      b.MetaDescription,
		Slug:                 b.Slug,
		AuthorID:             b.AuthorID,
		AuthorName:           b.AuthorName,
		AuthorEmail:          b.AuthorEmail,
		IsPublished:          b.IsPublished,
		IsOwner:              b.IsOwnedBy(viewerID),
		IsLikedByCurrentUser: b.IsLikedByViewer,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
		PublishedAt:          b.PublishedAt,
		ViewCount:            b.ViewCount,
		LikeCount:            b.LikeCount,
		CommentCount:         b.CommentCount,
		EstimatedReadTime:    b.EstimatedReadTime,
		Categories:           makeCategories(b.Categories),
		CategoryIDs:          b.CategoryIDs(),
		Comments:             []comments.CommentResponse{},
		Likes:                []likes.LikeResponse{},
	}
}

func makeBlogListItem(b entity.Blog) blogs.BlogListItemResponse {
	return blogs.BlogListItemResponse{
		ID:                   b.ID,
		Title:                b.Title,
		Summary:              b.Summary,
		FeaturedImageURL:     b.FeaturedImageURL,
		Slug:                 b.Slug,
		AuthorID:             b.AuthorID,
		AuthorName:           b.AuthorName,
		IsPublished:          b.IsPublished,
		IsLikedByCurrentUser: b.IsLikedByViewer,
		CreatedAt:            b.CreatedAt,
		PublishedAt:          b.PublishedAt,
		ViewCount:            b.ViewCount,
		LikeCount:            b.LikeCount,
		CommentCount:         b.CommentCount,
		EstimatedReadTime:    b.EstimatedReadTime,
		Categories:           makeCategories(b.Categories),
	}
}
