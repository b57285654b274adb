package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/repository/memory"
	"github.com/openblogdev/blogapi/internal/service"
	"github.com/openblogdev/blogapi/pkg/apperror"
)

type fixture struct {
	store    *memory.Store
	posts    service.PostService
	comments service.CommentService
	replies  service.ReplyService
	tags     service.TagService
	users    service.UserService
}

func newFixture() *fixture {
	store := memory.NewStore()
	userRepo := store.Users()
	postRepo := store.Posts()
	commentRepo := store.Comments()
	replyRepo := store.Replies()
	tagRepo := store.Tags()

	return &fixture{
		store:    store,
		posts:    service.NewPostService(postRepo, commentRepo, replyRepo, tagRepo, userRepo, nil),
		comments: service.NewCommentService(commentRepo, postRepo, replyRepo, userRepo),
		replies:  service.NewReplyService(replyRepo, commentRepo, userRepo),
		tags:     service.NewTagService(tagRepo, postRepo, commentRepo),
		users:    service.NewUserService(userRepo, postRepo, commentRepo),
	}
}

func (f *fixture) user(t *testing.T, username string, staff bool) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		IsStaff:  staff,
	}
	require.NoError(t, f.store.Users().Create(context.Background(), user))
	return user
}

func (f *fixture) post(t *testing.T, author *model.User, title, status string) *model.Post {
	t.Helper()
	post := &model.Post{Title: title, AuthorID: author.ID, Status: status, Description: title + " body"}
	require.NoError(t, f.store.Posts().Create(context.Background(), post))
	return post
}

func titles(items []dto.PostListItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func TestPostListVisibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	author := f.user(t, "author", false)
	other := f.user(t, "other", false)
	admin := f.user(t, "admin", true)

	f.post(t, author, "public", model.StatusPublished)
	f.post(t, author, "secret draft", model.StatusDraft)
	f.post(t, other, "other draft", model.StatusDraft)

	anon, _, err := f.posts.List(ctx, nil, dto.PostFilterQuery{}, 0, 20)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"public"}, titles(anon))

	own, _, err := f.posts.List(ctx, author, dto.PostFilterQuery{}, 0, 20)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"public", "secret draft"}, titles(own))

	all, _, err := f.posts.List(ctx, admin, dto.PostFilterQuery{}, 0, 20)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"public", "secret draft", "other draft"}, titles(all))
}

func TestPostListFilters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	author := f.user(t, "alice", false)
	other := f.user(t, "bob", false)
	f.post(t, author, "Go generics deep dive", model.StatusPublished)
	f.post(t, other, "Cooking with cast iron", model.StatusPublished)

	byTitle, _, err := f.posts.List(ctx, nil, dto.PostFilterQuery{Title: "generics"}, 0, 20)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Go generics deep dive"}, titles(byTitle))

	byAuthor, _, err := f.posts.List(ctx, nil, dto.PostFilterQuery{Author: "bob"}, 0, 20)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Cooking with cast iron"}, titles(byAuthor))

	bySearch, _, err := f.posts.List(ctx, nil, dto.PostFilterQuery{Search: "cast iron"}, 0, 20)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Cooking with cast iron"}, titles(bySearch))
}

func TestPostCreateRequiresAuthentication(t *testing.T) {
	f := newFixture()

	_, err := f.posts.Create(context.Background(), nil, dto.CreatePostRequest{Title: "nope"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestPostCreateAttachesTags(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.user(t, "tagger", false)

	detail, err := f.posts.Create(ctx, author, dto.CreatePostRequest{
		Title:  "tagged",
		Status: model.StatusPublished,
		Tags:   []string{"go", "testing"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "testing"}, detail.Tags)

	// Reusing a title must not mint a second tag.
	second, err := f.posts.Create(ctx, author, dto.CreatePostRequest{
		Title:  "also tagged",
		Status: model.StatusPublished,
		Tags:   []string{"go"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go"}, second.Tags)

	tagged, _, err := f.posts.List(ctx, nil, dto.PostFilterQuery{Topic: "go"}, 0, 20)
	require.NoError(t, err)
	assert.Len(t, tagged, 2)
}

func TestPostPublishIsOneWay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.user(t, "writer", false)
	post := f.post(t, author, "lifecycle", model.StatusDraft)

	published, err := f.posts.Update(ctx, author, post.ID, dto.UpdatePostRequest{
		Title:  "lifecycle",
		Status: model.StatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, published.Status)

	// Reverting to draft is silently ignored, not rejected.
	reverted, err := f.posts.Update(ctx, author, post.ID, dto.UpdatePostRequest{
		Title:  "lifecycle",
		Status: model.StatusDraft,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, reverted.Status)
}

func TestPostUpdateByNonOwnerForbidden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.user(t, "owner", false)
	other := f.user(t, "rando", false)
	post := f.post(t, author, "mine", model.StatusPublished)

	_, err := f.posts.Update(ctx, other, post.ID, dto.UpdatePostRequest{Title: "stolen"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	err = f.posts.Delete(ctx, other, post.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestPostDeleteCascades(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.user(t, "cascade", false)
	post := f.post(t, author, "doomed", model.StatusPublished)

	detail, err := f.comments.CreateForPost(ctx, author, post.ID, dto.CreateCommentRequest{Comment: "going down"})
	require.NoError(t, err)
	_, err = f.replies.CreateForComment(ctx, author, detail.ID, dto.CreateReplyRequest{Reply: "with you"})
	require.NoError(t, err)

	require.NoError(t, f.posts.Delete(ctx, author, post.ID))

	_, err = f.posts.Get(ctx, post.ID)
	assert.Error(t, err)
	_, err = f.comments.Get(ctx, detail.ID)
	assert.Error(t, err)

	count, err := f.store.Replies().CountByComment(ctx, detail.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUserScopedPostCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "shelf", false)
	other := f.user(t, "visitor", false)

	_, err := f.posts.CreateForUser(ctx, other, owner.ID, dto.CreatePostRequest{Title: "impostor"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	detail, err := f.posts.CreateForUser(ctx, owner, owner.ID, dto.CreatePostRequest{
		Title:  "on my shelf",
		Status: model.StatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, detail.Author.ID)

	// Reads stay open to everyone.
	items, total, err := f.posts.ListForUser(ctx, nil, owner.ID, listOpts())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}

func TestUserScopedPostsMissingUser(t *testing.T) {
	f := newFixture()

	_, _, err := f.posts.ListForUser(context.Background(), nil, uuid.New(), listOpts())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
