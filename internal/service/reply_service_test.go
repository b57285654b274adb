package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/pkg/apperror"
)

func (f *fixture) thread(t *testing.T, author *model.User) (postID, commentID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	post := f.post(t, author, "threaded", model.StatusPublished)
	comment, err := f.comments.CreateForPost(ctx, author, post.ID, dto.CreateCommentRequest{Comment: "root"})
	require.NoError(t, err)
	return post.ID, comment.ID
}

func TestReplyCreateForComment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.user(t, "threader", false)
	_, commentID := f.thread(t, author)

	detail, err := f.replies.CreateForComment(ctx, author, commentID, dto.CreateReplyRequest{Reply: "well said"})
	require.NoError(t, err)
	assert.Equal(t, commentID, detail.CommentID)
	assert.Nil(t, detail.Addsign)

	items, total, err := f.replies.ListForComment(ctx, nil, commentID, listOpts())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "well said", items[0].Reply)
}

func TestReplyAddsThreading(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.user(t, "agree", false)
	responder := f.user(t, "more", false)
	_, commentID := f.thread(t, author)

	root, err := f.replies.CreateForComment(ctx, author, commentID, dto.CreateReplyRequest{Reply: "take"})
	require.NoError(t, err)

	// An add lands in the same comment thread and points at its target.
	add, err := f.replies.CreateAdd(ctx, responder, root.ID, dto.CreateReplyRequest{Reply: "hot take"})
	require.NoError(t, err)
	assert.Equal(t, root.CommentID, add.CommentID)
	require.NotNil(t, add.Addsign)
	assert.Equal(t, root.ID, add.Addsign.ID)

	adds, total, err := f.replies.ListAdds(ctx, nil, root.ID, listOpts())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, adds, 1)
	assert.Equal(t, "hot take", adds[0].Reply)

	// The target's detail view lists the add and counts it.
	rootDetail, err := f.replies.Get(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, rootDetail.Adds, 1)
	assert.Equal(t, add.ID, rootDetail.Adds[0].ID)
}

func TestReplyDeleteDetachesAdds(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.user(t, "detach", false)
	_, commentID := f.thread(t, author)

	root, err := f.replies.CreateForComment(ctx, author, commentID, dto.CreateReplyRequest{Reply: "target"})
	require.NoError(t, err)
	add, err := f.replies.CreateAdd(ctx, author, root.ID, dto.CreateReplyRequest{Reply: "pointing"})
	require.NoError(t, err)

	require.NoError(t, f.replies.Delete(ctx, author, root.ID))

	// The add survives with its addsign cleared.
	orphan, err := f.replies.Get(ctx, add.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.Addsign)
}

func TestReplyAddsignValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.user(t, "validator", false)
	_, commentID := f.thread(t, author)

	root, err := f.replies.CreateForComment(ctx, author, commentID, dto.CreateReplyRequest{Reply: "root"})
	require.NoError(t, err)

	// A payload addsign pointing at a real reply is honored.
	linked, err := f.replies.CreateForComment(ctx, author, commentID, dto.CreateReplyRequest{
		Reply:   "linked",
		Addsign: &root.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, linked.Addsign)
	assert.Equal(t, root.ID, linked.Addsign.ID)
}

func TestUserScopedReplyCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "replier", false)
	other := f.user(t, "outsider", false)
	_, commentID := f.thread(t, owner)

	detail, err := f.replies.CreateForUser(ctx, owner, owner.ID, dto.CreateUserReplyRequest{
		Comment: commentID,
		Reply:   "mine",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, detail.Author.ID)

	_, err = f.replies.CreateForUser(ctx, other, owner.ID, dto.CreateUserReplyRequest{
		Comment: commentID,
		Reply:   "not mine",
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
