package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/repository"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Slug == "" {
		user.Slug = user.Username
	}
	user.DateJoined = r.s.tick()

	clone := *user
	r.s.users[user.ID] = &clone
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.s.loadUser(user), nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Username == username {
			return r.s.loadUser(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			return r.s.loadUser(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepo) List(_ context.Context, opts repository.ListOptions) ([]*model.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*model.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		users = append(users, r.s.loadUser(user))
	}

	key, desc := orderKey(opts.Ordering)
	switch key {
	case "username":
		sort.SliceStable(users, func(i, j int) bool {
			if desc {
				return users[i].Username > users[j].Username
			}
			return users[i].Username < users[j].Username
		})
	case "date_joined":
		sortByTime(users, func(u *model.User) time.Time { return u.DateJoined }, desc)
	case "id":
		sortByID(users, func(u *model.User) uuid.UUID { return u.ID }, desc)
	default:
		sortByID(users, func(u *model.User) uuid.UUID { return u.ID }, false)
	}

	total := int64(len(users))
	return paginate(users, opts.Offset, opts.Limit), total, nil
}

func (r *userRepo) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	clone.Posts = nil
	r.s.users[user.ID] = &clone
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}

	for postID, post := range r.s.posts {
		if post.AuthorID == id {
			r.s.deletePost(postID)
		}
	}
	for commentID, comment := range r.s.comments {
		if comment.AuthorID == id {
			r.s.deleteComment(commentID)
		}
	}
	for replyID, reply := range r.s.replies {
		if reply.AuthorID == id {
			r.s.deleteReply(replyID)
		}
	}

	delete(r.s.users, id)
	return nil
}

// loadUser copies the record with its authored posts attached. Callers hold
// the store lock.
func (s *Store) loadUser(user *model.User) *model.User {
	clone := *user
	clone.Posts = nil
	for _, post := range s.posts {
		if post.AuthorID == user.ID {
			clone.Posts = append(clone.Posts, *s.loadPost(post))
		}
	}
	sortByTime(clone.Posts, func(p model.Post) time.Time { return p.CreatedAt }, true)
	return &clone
}
