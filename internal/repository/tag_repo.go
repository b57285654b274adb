package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/model"
)

type TagRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	ListByPost(ctx context.Context, postID uuid.UUID, opts ListOptions) ([]*model.Tag, int64, error)
	// FindOrCreate resolves tag titles to tags, creating missing ones.
	FindOrCreate(ctx context.Context, titles []string) ([]model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).
		Preload("Posts").
		Preload("Posts.Author").
		Preload("Posts.Tags").
		Where("id = ?", id).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) ListByPost(ctx context.Context, postID uuid.UUID, opts ListOptions) ([]*model.Tag, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Tag{}).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tags []*model.Tag
	if err := query.
		Order("tags.id").
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&tags).Error; err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

func (r *tagRepository) FindOrCreate(ctx context.Context, titles []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(titles))
	for _, title := range titles {
		var tag model.Tag
		err := r.db.WithContext(ctx).
			Where(model.Tag{Title: title}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
