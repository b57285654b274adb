package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/pkg/apperror"
)

func registerReq(username string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "hunter2hunter2",
		PasswordConfirm: "hunter2hunter2",
		PhoneNumber:     "+4477000",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	detail, err := f.users.Register(ctx, registerReq("newcomer"), dto.V2)
	require.NoError(t, err)
	assert.Equal(t, "newcomer", detail.Username)

	// The stored credential is a hash, never the password itself.
	stored, err := f.store.Users().FindByUsername(ctx, "newcomer")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.users.Register(ctx, registerReq("taken"), dto.V2)
	require.NoError(t, err)

	req := registerReq("taken")
	req.Email = "different@example.com"
	_, err = f.users.Register(ctx, req, dto.V2)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestUserListAdminOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.user(t, "somebody", false)
	admin := f.user(t, "admin", true)
	regular := f.user(t, "regular", false)

	_, _, err := f.users.List(ctx, nil, listOpts())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	_, _, err = f.users.List(ctx, regular, listOpts())
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	items, total, err := f.users.List(ctx, admin, listOpts())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 3)
}

func TestUserGetSelfOrAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "private", false)
	other := f.user(t, "nosy", false)
	admin := f.user(t, "admin", true)

	_, err := f.users.Get(ctx, other, owner.ID, dto.V2)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	self, err := f.users.Get(ctx, owner, owner.ID, dto.V2)
	require.NoError(t, err)
	assert.Equal(t, "private", self.Username)

	_, err = f.users.Get(ctx, admin, owner.ID, dto.V2)
	require.NoError(t, err)
}

func TestUserDetailVersionedPhoneNumber(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.users.Register(ctx, registerReq("phoned"), dto.V2)
	require.NoError(t, err)

	stored, err := f.store.Users().FindByUsername(ctx, "phoned")
	require.NoError(t, err)

	v1, err := f.users.Get(ctx, stored, created.ID, dto.V1)
	require.NoError(t, err)
	assert.Nil(t, v1.PhoneNumber)

	v2, err := f.users.Get(ctx, stored, created.ID, dto.V2)
	require.NoError(t, err)
	require.NotNil(t, v2.PhoneNumber)
	assert.Equal(t, "+4477000", *v2.PhoneNumber)
}

func TestUserUpdateAndDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "mutable", false)
	other := f.user(t, "bystander", false)

	update := dto.UpdateUserRequest{
		Username: "renamed",
		Email:    "renamed@example.com",
	}
	_, err := f.users.Update(ctx, other, owner.ID, update, dto.V2)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := f.users.Update(ctx, owner, owner.ID, update, dto.V2)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)

	err = f.users.Delete(ctx, other, owner.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	require.NoError(t, f.users.Delete(ctx, owner, owner.ID))

	_, err = f.users.Get(ctx, other, owner.ID, dto.V2)
	assert.Error(t, err)
}

func TestUserDeleteCascadesContent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user(t, "leaver", false)
	post := f.post(t, owner, "left behind", model.StatusPublished)

	require.NoError(t, f.users.Delete(ctx, owner, owner.ID))

	_, err := f.posts.Get(ctx, post.ID)
	assert.Error(t, err)
}
