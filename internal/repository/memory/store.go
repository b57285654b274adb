// Package memory holds map-backed implementations of the repository
// interfaces. They keep the service and relation tests free of a database
// while preserving the relational behavior the SQL implementations rely
// on: visibility scoping, cascading deletes and addsign detachment.
package memory

import (
	"bytes"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/repository"
)

// Store is the shared backing state for all memory repositories.
type Store struct {
	mu sync.RWMutex

	users    map[uuid.UUID]*model.User
	posts    map[uuid.UUID]*model.Post
	comments map[uuid.UUID]*model.Comment
	replies  map[uuid.UUID]*model.Reply
	tags     map[uuid.UUID]*model.Tag

	// postTags mirrors the join table.
	postTags map[uuid.UUID][]uuid.UUID

	seq int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]*model.User),
		posts:    make(map[uuid.UUID]*model.Post),
		comments: make(map[uuid.UUID]*model.Comment),
		replies:  make(map[uuid.UUID]*model.Reply),
		tags:     make(map[uuid.UUID]*model.Tag),
		postTags: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *Store) Users() repository.UserRepository       { return &userRepo{s} }
func (s *Store) Posts() repository.PostRepository       { return &postRepo{s} }
func (s *Store) Comments() repository.CommentRepository { return &commentRepo{s} }
func (s *Store) Replies() repository.ReplyRepository    { return &replyRepo{s} }
func (s *Store) Tags() repository.TagRepository         { return &tagRepo{s} }

// tick produces strictly increasing timestamps so insertion order survives
// sorting even when the clock does not advance between writes.
func (s *Store) tick() time.Time {
	s.seq++
	return time.Unix(0, s.seq*int64(time.Millisecond))
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// orderKey strips a leading "-" and reports whether the sort descends.
func orderKey(ordering string) (string, bool) {
	if strings.HasPrefix(ordering, "-") {
		return ordering[1:], true
	}
	return ordering, false
}

func sortByTime[T any](items []T, at func(T) time.Time, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return at(items[i]).After(at(items[j]))
		}
		return at(items[i]).Before(at(items[j]))
	})
}

// sortByID sorts by primary key the way postgres compares uuid columns.
// With uuidv7 keys this is insertion order, the SQL listings' fallback.
func sortByID[T any](items []T, id func(T) uuid.UUID, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := id(items[i]), id(items[j])
		if desc {
			return bytes.Compare(a[:], b[:]) > 0
		}
		return bytes.Compare(a[:], b[:]) < 0
	})
}
