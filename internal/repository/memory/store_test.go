package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/repository"
	"github.com/openblogdev/blogapi/internal/repository/memory"
)

func seedUser(t *testing.T, store *memory.Store, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func seedPost(t *testing.T, store *memory.Store, author *model.User, title string) *model.Post {
	t.Helper()
	post := &model.Post{Title: title, AuthorID: author.ID, Status: model.StatusPublished}
	require.NoError(t, store.Posts().Create(context.Background(), post))
	return post
}

func seedComment(t *testing.T, store *memory.Store, post *model.Post, author *model.User, text string) *model.Comment {
	t.Helper()
	comment := &model.Comment{PostID: post.ID, AuthorID: author.ID, Comment: text}
	require.NoError(t, store.Comments().Create(context.Background(), comment))
	return comment
}

func TestPostListDefaultsToInsertionOrder(t *testing.T) {
	store := memory.NewStore()
	author := seedUser(t, store, "writer")
	for _, title := range []string{"first", "second", "third"} {
		seedPost(t, store, author, title)
	}

	posts, total, err := store.Posts().List(context.Background(), repository.PostFilter{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	titles := make([]string, 0, len(posts))
	for _, post := range posts {
		titles = append(titles, post.Title)
	}
	assert.Equal(t, []string{"first", "second", "third"}, titles)
}

func TestCommentListOrdering(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	author := seedUser(t, store, "talker")
	post := seedPost(t, store, author, "thread")
	seedComment(t, store, post, author, "oldest")
	seedComment(t, store, post, author, "newest")

	comments, _, err := store.Comments().ListByPost(ctx, post.ID, repository.ListOptions{Limit: 20})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "oldest", comments[0].Comment)

	comments, _, err = store.Comments().ListByPost(ctx, post.ID, repository.ListOptions{Ordering: "-commented_at", Limit: 20})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "newest", comments[0].Comment)

	// Unknown columns fall back to primary-key order, like the SQL listings.
	comments, _, err = store.Comments().ListByPost(ctx, post.ID, repository.ListOptions{Ordering: "-comment", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, "oldest", comments[0].Comment)
}

func TestCommentListAuthorFilter(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, alice, "debated")
	seedComment(t, store, post, alice, "from alice")
	seedComment(t, store, post, bob, "from bob")

	comments, total, err := store.Comments().ListByPost(ctx, post.ID, repository.ListOptions{Author: "alice", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, comments, 1)
	assert.Equal(t, "from alice", comments[0].Comment)
}

func TestReplyListAuthorFilter(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, alice, "debated")
	comment := seedComment(t, store, post, alice, "opening")

	for _, who := range []*model.User{alice, bob} {
		reply := &model.Reply{CommentID: comment.ID, AuthorID: who.ID, Reply: "from " + who.Username}
		require.NoError(t, store.Replies().Create(ctx, reply))
	}

	replies, total, err := store.Replies().ListByComment(ctx, comment.ID, repository.ListOptions{Author: "bob", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, replies, 1)
	assert.Equal(t, "from bob", replies[0].Reply)
}
