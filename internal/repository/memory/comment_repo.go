package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/repository"
)

type commentRepo struct {
	s *Store
}

func (r *commentRepo) Create(_ context.Context, comment *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[comment.PostID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if _, ok := r.s.users[comment.AuthorID]; !ok {
		return gorm.ErrForeignKeyViolated
	}

	if comment.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		comment.ID = id
	}
	comment.CommentedAt = r.s.tick()
	comment.UpdatedAt = comment.CommentedAt

	clone := *comment
	clone.Post = model.Post{}
	clone.Author = model.User{}
	clone.Replies = nil
	r.s.comments[comment.ID] = &clone
	return nil
}

func (r *commentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comment, ok := r.s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.s.loadComment(comment), nil
}

func (r *commentRepo) ListByPost(_ context.Context, postID uuid.UUID, opts repository.ListOptions) ([]*model.Comment, int64, error) {
	return r.list(func(c *model.Comment) bool { return c.PostID == postID }, opts)
}

func (r *commentRepo) ListByAuthor(_ context.Context, authorID uuid.UUID, opts repository.ListOptions) ([]*model.Comment, int64, error) {
	return r.list(func(c *model.Comment) bool { return c.AuthorID == authorID }, opts)
}

func (r *commentRepo) list(match func(*model.Comment) bool, opts repository.ListOptions) ([]*model.Comment, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*model.Comment, 0)
	for _, comment := range r.s.comments {
		if !match(comment) {
			continue
		}
		if opts.Author != "" {
			author, ok := r.s.users[comment.AuthorID]
			if !ok || author.Username != opts.Author {
				continue
			}
		}
		matched = append(matched, r.s.loadComment(comment))
	}

	key, desc := orderKey(opts.Ordering)
	switch key {
	case "commented_at":
		sortByTime(matched, func(c *model.Comment) time.Time { return c.CommentedAt }, desc)
	case "updated_at":
		sortByTime(matched, func(c *model.Comment) time.Time { return c.UpdatedAt }, desc)
	case "id":
		sortByID(matched, func(c *model.Comment) uuid.UUID { return c.ID }, desc)
	default:
		sortByID(matched, func(c *model.Comment) uuid.UUID { return c.ID }, false)
	}

	total := int64(len(matched))
	return paginate(matched, opts.Offset, opts.Limit), total, nil
}

func (r *commentRepo) Update(_ context.Context, comment *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.comments[comment.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	clone := *comment
	clone.CommentedAt = existing.CommentedAt
	clone.UpdatedAt = r.s.tick()
	clone.Post = model.Post{}
	clone.Author = model.User{}
	clone.Replies = nil
	r.s.comments[comment.ID] = &clone
	return nil
}

func (r *commentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.deleteComment(id)
	return nil
}

func (r *commentRepo) CountByPost(_ context.Context, postID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, comment := range r.s.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *commentRepo) CountByAuthor(_ context.Context, authorID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, comment := range r.s.comments {
		if comment.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

// deleteComment removes the comment and its replies. Callers hold the store
// lock.
func (s *Store) deleteComment(id uuid.UUID) {
	for replyID, reply := range s.replies {
		if reply.CommentID == id {
			s.deleteReply(replyID)
		}
	}
	delete(s.comments, id)
}

// loadComment copies the record with post, author and replies attached.
// Callers hold the store lock.
func (s *Store) loadComment(comment *model.Comment) *model.Comment {
	clone := *comment

	if post, ok := s.posts[comment.PostID]; ok {
		clone.Post = *post
		clone.Post.Comments = nil
		if author, ok := s.users[post.AuthorID]; ok {
			clone.Post.Author = *author
			clone.Post.Author.Posts = nil
		}
	}
	if author, ok := s.users[comment.AuthorID]; ok {
		clone.Author = *author
		clone.Author.Posts = nil
	}

	clone.Replies = nil
	for _, reply := range s.replies {
		if reply.CommentID == comment.ID {
			rep := *reply
			if author, ok := s.users[reply.AuthorID]; ok {
				rep.Author = *author
				rep.Author.Posts = nil
			}
			rep.Adds = nil
			clone.Replies = append(clone.Replies, rep)
		}
	}
	sortByTime(clone.Replies, func(r model.Reply) time.Time { return r.RepliedAt }, false)

	return &clone
}
