package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/repository"
)

type replyRepo struct {
	s *Store
}

func (r *replyRepo) Create(_ context.Context, reply *model.Reply) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[reply.CommentID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if _, ok := r.s.users[reply.AuthorID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if reply.AddsignID != nil {
		if _, ok := r.s.replies[*reply.AddsignID]; !ok {
			return gorm.ErrForeignKeyViolated
		}
	}

	if reply.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		reply.ID = id
	}
	reply.RepliedAt = r.s.tick()
	reply.UpdatedAt = reply.RepliedAt

	clone := *reply
	clone.Comment = model.Comment{}
	clone.Author = model.User{}
	clone.Addsign = nil
	clone.Adds = nil
	r.s.replies[reply.ID] = &clone
	return nil
}

func (r *replyRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reply, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reply, ok := r.s.replies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.s.loadReply(reply), nil
}

func (r *replyRepo) ListByComment(_ context.Context, commentID uuid.UUID, opts repository.ListOptions) ([]*model.Reply, int64, error) {
	return r.list(func(rep *model.Reply) bool { return rep.CommentID == commentID }, opts)
}

func (r *replyRepo) ListAdds(_ context.Context, replyID uuid.UUID, opts repository.ListOptions) ([]*model.Reply, int64, error) {
	return r.list(func(rep *model.Reply) bool {
		return rep.AddsignID != nil && *rep.AddsignID == replyID
	}, opts)
}

func (r *replyRepo) ListByAuthor(_ context.Context, authorID uuid.UUID, opts repository.ListOptions) ([]*model.Reply, int64, error) {
	return r.list(func(rep *model.Reply) bool { return rep.AuthorID == authorID }, opts)
}

func (r *replyRepo) list(match func(*model.Reply) bool, opts repository.ListOptions) ([]*model.Reply, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*model.Reply, 0)
	for _, reply := range r.s.replies {
		if !match(reply) {
			continue
		}
		if opts.Author != "" {
			author, ok := r.s.users[reply.AuthorID]
			if !ok || author.Username != opts.Author {
				continue
			}
		}
		matched = append(matched, r.s.loadReply(reply))
	}

	key, desc := orderKey(opts.Ordering)
	switch key {
	case "replied_at":
		sortByTime(matched, func(rep *model.Reply) time.Time { return rep.RepliedAt }, desc)
	case "updated_at":
		sortByTime(matched, func(rep *model.Reply) time.Time { return rep.UpdatedAt }, desc)
	case "id":
		sortByID(matched, func(rep *model.Reply) uuid.UUID { return rep.ID }, desc)
	default:
		sortByID(matched, func(rep *model.Reply) uuid.UUID { return rep.ID }, false)
	}

	total := int64(len(matched))
	return paginate(matched, opts.Offset, opts.Limit), total, nil
}

func (r *replyRepo) Update(_ context.Context, reply *model.Reply) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.replies[reply.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	clone := *reply
	clone.RepliedAt = existing.RepliedAt
	clone.UpdatedAt = r.s.tick()
	clone.Comment = model.Comment{}
	clone.Author = model.User{}
	clone.Addsign = nil
	clone.Adds = nil
	r.s.replies[reply.ID] = &clone
	return nil
}

func (r *replyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.replies[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.deleteReply(id)
	return nil
}

func (r *replyRepo) CountByComment(_ context.Context, commentID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, reply := range r.s.replies {
		if reply.CommentID == commentID {
			count++
		}
	}
	return count, nil
}

func (r *replyRepo) CountAdds(_ context.Context, replyID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, reply := range r.s.replies {
		if reply.AddsignID != nil && *reply.AddsignID == replyID {
			count++
		}
	}
	return count, nil
}

func (r *replyRepo) CountByAuthor(_ context.Context, authorID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, reply := range r.s.replies {
		if reply.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

// deleteReply removes the reply and detaches anything addressed at it, the
// way the SET NULL constraint does. Callers hold the store lock.
func (s *Store) deleteReply(id uuid.UUID) {
	for _, reply := range s.replies {
		if reply.AddsignID != nil && *reply.AddsignID == id {
			reply.AddsignID = nil
		}
	}
	delete(s.replies, id)
}

// loadReply copies the record with author, comment, addsign and adds
// attached. Callers hold the store lock.
func (s *Store) loadReply(reply *model.Reply) *model.Reply {
	clone := *reply

	if author, ok := s.users[reply.AuthorID]; ok {
		clone.Author = *author
		clone.Author.Posts = nil
	}
	if comment, ok := s.comments[reply.CommentID]; ok {
		clone.Comment = *comment
		clone.Comment.Replies = nil
	}
	if reply.AddsignID != nil {
		if target, ok := s.replies[*reply.AddsignID]; ok {
			t := *target
			if author, ok := s.users[target.AuthorID]; ok {
				t.Author = *author
				t.Author.Posts = nil
			}
			t.Adds = nil
			clone.Addsign = &t
		}
	}

	clone.Adds = nil
	for _, add := range s.replies {
		if add.AddsignID != nil && *add.AddsignID == reply.ID {
			a := *add
			if author, ok := s.users[add.AuthorID]; ok {
				a.Author = *author
				a.Author.Posts = nil
			}
			a.Adds = nil
			clone.Adds = append(clone.Adds, a)
		}
	}
	sortByTime(clone.Adds, func(a model.Reply) time.Time { return a.RepliedAt }, false)

	return &clone
}
