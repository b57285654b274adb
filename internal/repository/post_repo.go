package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/model"
)

// PostFilter describes one post list request: the requester (for visibility
// scoping) plus the supported query filters.
type PostFilter struct {
	Actor       *model.User
	Title       string      // title__icontains
	Description string      // description__icontains
	Status      string      // exact
	Author      string      // author username, exact
	Topic       string      // tag title icontains
	Search      string      // matches title or description
	IDs         []uuid.UUID // restrict to a search result set
	Ordering    string
	Offset      int
	Limit       int
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	List(ctx context.Context, filter PostFilter) ([]*model.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, opts ListOptions) ([]*model.Post, int64, error)
	Update(ctx context.Context, post *model.Post) error
	ReplaceTags(ctx context.Context, post *model.Post, tags []model.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}

var postOrderColumns = map[string]bool{
	"id": true, "title": true, "status": true, "created_at": true, "updated_at": true,
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Comments").
		Preload("Comments.Author").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]*model.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Post{}).
		Scopes(VisibleTo(filter.Actor))

	if filter.Title != "" {
		query = query.Where("posts.title ILIKE ?", "%"+filter.Title+"%")
	}
	if filter.Description != "" {
		query = query.Where("posts.description ILIKE ?", "%"+filter.Description+"%")
	}
	if filter.Status != "" {
		query = query.Where("posts.status = ?", filter.Status)
	}
	if filter.Author != "" {
		query = query.Joins("JOIN users ON users.id = posts.author_id").
			Where("users.username = ?", filter.Author)
	}
	if filter.Topic != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.title ILIKE ?", "%"+filter.Topic+"%").
			Distinct("posts.*")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("posts.title ILIKE ? OR posts.description ILIKE ?", pattern, pattern)
	}
	if filter.IDs != nil {
		query = query.Where("posts.id IN ?", filter.IDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*model.Post
	order := orderClause(filter.Ordering, postOrderColumns, "posts.id")
	if err := query.
		Preload("Author").
		Preload("Tags").
		Order(order).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, opts ListOptions) ([]*model.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("posts.author_id = ?", authorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*model.Post
	order := orderClause(opts.Ordering, postOrderColumns, "posts.id")
	if err := query.
		Preload("Author").
		Preload("Tags").
		Order(order).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) ReplaceTags(ctx context.Context, post *model.Post, tags []model.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Comments and their replies go with the post via the FK constraints,
	// within one delete statement's transaction scope.
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
