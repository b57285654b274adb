package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/repository"
)

type tagRepo struct {
	s *Store
}

func (r *tagRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tag, ok := r.s.tags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	clone := *tag
	clone.Posts = nil
	for postID, tagIDs := range r.s.postTags {
		for _, tagID := range tagIDs {
			if tagID != id {
				continue
			}
			if post, ok := r.s.posts[postID]; ok {
				clone.Posts = append(clone.Posts, *r.s.loadPost(post))
			}
		}
	}
	sortByTime(clone.Posts, func(p model.Post) time.Time { return p.CreatedAt }, true)

	return &clone, nil
}

func (r *tagRepo) ListByPost(_ context.Context, postID uuid.UUID, opts repository.ListOptions) ([]*model.Tag, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*model.Tag, 0)
	for _, tagID := range r.s.postTags[postID] {
		if tag, ok := r.s.tags[tagID]; ok {
			clone := *tag
			clone.Posts = nil
			matched = append(matched, &clone)
		}
	}

	total := int64(len(matched))
	return paginate(matched, opts.Offset, opts.Limit), total, nil
}

func (r *tagRepo) FindOrCreate(_ context.Context, titles []string) ([]model.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tags := make([]model.Tag, 0, len(titles))
	for _, title := range titles {
		var found *model.Tag
		for _, tag := range r.s.tags {
			if tag.Title == title {
				found = tag
				break
			}
		}
		if found == nil {
			found = &model.Tag{ID: uuid.New(), Title: title, CreatedAt: r.s.tick()}
			r.s.tags[found.ID] = found
		}

		clone := *found
		clone.Posts = nil
		tags = append(tags, clone)
	}
	return tags, nil
}
