package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/model"
)

type ReplyRepository interface {
	Create(ctx context.Context, reply *model.Reply) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reply, error)
	ListByComment(ctx context.Context, commentID uuid.UUID, opts ListOptions) ([]*model.Reply, int64, error)
	// ListAdds lists the replies that reference replyID as their addsign.
	ListAdds(ctx context.Context, replyID uuid.UUID, opts ListOptions) ([]*model.Reply, int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, opts ListOptions) ([]*model.Reply, int64, error)
	Update(ctx context.Context, reply *model.Reply) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByComment(ctx context.Context, commentID uuid.UUID) (int64, error)
	CountAdds(ctx context.Context, replyID uuid.UUID) (int64, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}

var replyOrderColumns = map[string]bool{
	"id": true, "replied_at": true, "updated_at": true,
}

type replyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *model.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *replyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Reply, error) {
	var reply model.Reply
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comment").
		Preload("Addsign").
		Preload("Addsign.Author").
		Preload("Adds").
		Preload("Adds.Author").
		Where("id = ?", id).
		First(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *replyRepository) listWhere(ctx context.Context, cond string, arg any, opts ListOptions) ([]*model.Reply, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Reply{}).Where(cond, arg)

	if opts.Author != "" {
		query = query.Joins("JOIN users ON users.id = replies.author_id").
			Where("users.username = ?", opts.Author)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var replies []*model.Reply
	order := orderClause(opts.Ordering, replyOrderColumns, "replies.id")
	if err := query.
		Preload("Author").
		Preload("Comment").
		Preload("Addsign").
		Preload("Addsign.Author").
		Order(order).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&replies).Error; err != nil {
		return nil, 0, err
	}
	return replies, total, nil
}

func (r *replyRepository) ListByComment(ctx context.Context, commentID uuid.UUID, opts ListOptions) ([]*model.Reply, int64, error) {
	return r.listWhere(ctx, "replies.comment_id = ?", commentID, opts)
}

func (r *replyRepository) ListAdds(ctx context.Context, replyID uuid.UUID, opts ListOptions) ([]*model.Reply, int64, error) {
	return r.listWhere(ctx, "replies.addsign_id = ?", replyID, opts)
}

func (r *replyRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, opts ListOptions) ([]*model.Reply, int64, error) {
	return r.listWhere(ctx, "replies.author_id = ?", authorID, opts)
}

func (r *replyRepository) Update(ctx context.Context, reply *model.Reply) error {
	return r.db.WithContext(ctx).Save(reply).Error
}

func (r *replyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Reply{}, id).Error
}

func (r *replyRepository) CountByComment(ctx context.Context, commentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Reply{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}

func (r *replyRepository) CountAdds(ctx context.Context, replyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Reply{}).
		Where("addsign_id = ?", replyID).
		Count(&count).Error
	return count, err
}

func (r *replyRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Reply{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
