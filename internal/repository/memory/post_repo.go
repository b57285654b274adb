package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/repository"
)

type postRepo struct {
	s *Store
}

func (r *postRepo) Create(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[post.AuthorID]; !ok {
		return gorm.ErrForeignKeyViolated
	}

	if post.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		post.ID = id
	}
	if post.Status == "" {
		post.Status = model.StatusDraft
	}
	post.CreatedAt = r.s.tick()
	post.UpdatedAt = post.CreatedAt

	tagIDs := make([]uuid.UUID, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	r.s.postTags[post.ID] = tagIDs

	clone := *post
	clone.Tags = nil
	clone.Comments = nil
	clone.Author = model.User{}
	r.s.posts[post.ID] = &clone
	return nil
}

func (r *postRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	post, ok := r.s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.s.loadPost(post), nil
}

func (r *postRepo) List(_ context.Context, filter repository.PostFilter) ([]*model.Post, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*model.Post, 0)
	for _, post := range r.s.posts {
		if !visible(post, filter.Actor) {
			continue
		}
		if !r.matches(post, filter) {
			continue
		}
		matched = append(matched, r.s.loadPost(post))
	}

	orderPosts(matched, filter.Ordering)

	total := int64(len(matched))
	return paginate(matched, filter.Offset, filter.Limit), total, nil
}

func (r *postRepo) matches(post *model.Post, filter repository.PostFilter) bool {
	if filter.Title != "" && !containsFold(post.Title, filter.Title) {
		return false
	}
	if filter.Description != "" && !containsFold(post.Description, filter.Description) {
		return false
	}
	if filter.Status != "" && post.Status != filter.Status {
		return false
	}
	if filter.Author != "" {
		author, ok := r.s.users[post.AuthorID]
		if !ok || author.Username != filter.Author {
			return false
		}
	}
	if filter.Topic != "" {
		found := false
		for _, tagID := range r.s.postTags[post.ID] {
			if tag, ok := r.s.tags[tagID]; ok && containsFold(tag.Title, filter.Topic) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Search != "" &&
		!containsFold(post.Title, filter.Search) &&
		!containsFold(post.Description, filter.Search) {
		return false
	}
	if filter.IDs != nil {
		found := false
		for _, id := range filter.IDs {
			if id == post.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *postRepo) ListByAuthor(_ context.Context, authorID uuid.UUID, opts repository.ListOptions) ([]*model.Post, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*model.Post, 0)
	for _, post := range r.s.posts {
		if post.AuthorID == authorID {
			matched = append(matched, r.s.loadPost(post))
		}
	}
	orderPosts(matched, opts.Ordering)

	total := int64(len(matched))
	return paginate(matched, opts.Offset, opts.Limit), total, nil
}

func (r *postRepo) Update(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.posts[post.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	clone := *post
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = r.s.tick()
	clone.Tags = nil
	clone.Comments = nil
	clone.Author = model.User{}
	r.s.posts[post.ID] = &clone
	return nil
}

func (r *postRepo) ReplaceTags(_ context.Context, post *model.Post, tags []model.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}

	tagIDs := make([]uuid.UUID, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	r.s.postTags[post.ID] = tagIDs
	return nil
}

func (r *postRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.deletePost(id)
	return nil
}

func (r *postRepo) CountByAuthor(_ context.Context, authorID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, post := range r.s.posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

// deletePost removes the post and everything hanging off it. Callers hold
// the store lock.
func (s *Store) deletePost(id uuid.UUID) {
	for commentID, comment := range s.comments {
		if comment.PostID == id {
			s.deleteComment(commentID)
		}
	}
	delete(s.postTags, id)
	delete(s.posts, id)
}

// loadPost copies the record with author, tags and comments attached.
// Callers hold the store lock.
func (s *Store) loadPost(post *model.Post) *model.Post {
	clone := *post

	if author, ok := s.users[post.AuthorID]; ok {
		clone.Author = *author
		clone.Author.Posts = nil
	}

	clone.Tags = nil
	for _, tagID := range s.postTags[post.ID] {
		if tag, ok := s.tags[tagID]; ok {
			t := *tag
			t.Posts = nil
			clone.Tags = append(clone.Tags, t)
		}
	}

	clone.Comments = nil
	for _, comment := range s.comments {
		if comment.PostID == post.ID {
			c := *comment
			if author, ok := s.users[comment.AuthorID]; ok {
				c.Author = *author
				c.Author.Posts = nil
			}
			c.Replies = nil
			clone.Comments = append(clone.Comments, c)
		}
	}
	sortByTime(clone.Comments, func(c model.Comment) time.Time { return c.CommentedAt }, false)

	return &clone
}

func visible(post *model.Post, actor *model.User) bool {
	if post.Published() {
		return true
	}
	if actor == nil {
		return false
	}
	return actor.IsStaff || post.AuthorID == actor.ID
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func orderPosts(posts []*model.Post, ordering string) {
	key, desc := orderKey(ordering)
	switch key {
	case "title":
		sort.SliceStable(posts, func(i, j int) bool {
			if desc {
				return posts[i].Title > posts[j].Title
			}
			return posts[i].Title < posts[j].Title
		})
	case "status":
		sort.SliceStable(posts, func(i, j int) bool {
			if desc {
				return posts[i].Status > posts[j].Status
			}
			return posts[i].Status < posts[j].Status
		})
	case "updated_at":
		sortByTime(posts, func(p *model.Post) time.Time { return p.UpdatedAt }, desc)
	case "created_at":
		sortByTime(posts, func(p *model.Post) time.Time { return p.CreatedAt }, desc)
	case "id":
		sortByID(posts, func(p *model.Post) uuid.UUID { return p.ID }, desc)
	default:
		sortByID(posts, func(p *model.Post) uuid.UUID { return p.ID }, false)
	}
}
