package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID, opts ListOptions) ([]*model.Comment, int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, opts ListOptions) ([]*model.Comment, int64, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByPost(ctx context.Context, postID uuid.UUID) (int64, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}

var commentOrderColumns = map[string]bool{
	"id": true, "commented_at": true, "updated_at": true,
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Author").
		Preload("Replies").
		Preload("Replies.Author").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) listWhere(ctx context.Context, cond string, arg any, opts ListOptions) ([]*model.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Comment{}).Where(cond, arg)

	if opts.Author != "" {
		query = query.Joins("JOIN users ON users.id = comments.author_id").
			Where("users.username = ?", opts.Author)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*model.Comment
	order := orderClause(opts.Ordering, commentOrderColumns, "comments.id")
	if err := query.
		Preload("Author").
		Preload("Post").
		Order(order).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uuid.UUID, opts ListOptions) ([]*model.Comment, int64, error) {
	return r.listWhere(ctx, "comments.post_id = ?", postID, opts)
}

func (r *commentRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, opts ListOptions) ([]*model.Comment, int64, error) {
	return r.listWhere(ctx, "comments.author_id = ?", authorID, opts)
}

func (r *commentRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}

func (r *commentRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
