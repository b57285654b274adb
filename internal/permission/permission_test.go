package permission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/openblogdev/blogapi/internal/model"
)

var (
	ownerID    = uuid.New()
	strangerID = uuid.New()
)

func owner() *model.User    { return &model.User{ID: ownerID} }
func stranger() *model.User { return &model.User{ID: strangerID} }
func staff() *model.User    { return &model.User{ID: uuid.New(), IsStaff: true} }

func TestAuthenticatedOrReadOnly(t *testing.T) {
	assert.NoError(t, AuthenticatedOrReadOnly(nil, true, uuid.Nil))
	assert.NoError(t, AuthenticatedOrReadOnly(stranger(), false, uuid.Nil))
	assert.Error(t, AuthenticatedOrReadOnly(nil, false, uuid.Nil))
}

func TestOwnerOrReadOnly(t *testing.T) {
	assert.NoError(t, OwnerOrReadOnly(nil, true, ownerID))
	assert.NoError(t, OwnerOrReadOnly(stranger(), true, ownerID))
	assert.NoError(t, OwnerOrReadOnly(owner(), false, ownerID))
	assert.Error(t, OwnerOrReadOnly(stranger(), false, ownerID))
	assert.Error(t, OwnerOrReadOnly(nil, false, ownerID))
	// Staff status grants no write access over someone else's object.
	assert.Error(t, OwnerOrReadOnly(staff(), false, ownerID))
}

func TestSelfOrAdmin(t *testing.T) {
	assert.NoError(t, SelfOrAdmin(owner(), true, ownerID))
	assert.NoError(t, SelfOrAdmin(owner(), false, ownerID))
	assert.NoError(t, SelfOrAdmin(staff(), false, ownerID))
	assert.Error(t, SelfOrAdmin(stranger(), true, ownerID))
	assert.Error(t, SelfOrAdmin(nil, true, ownerID))
}

func TestSelfOrReadOnly(t *testing.T) {
	assert.NoError(t, SelfOrReadOnly(nil, true, ownerID))
	assert.NoError(t, SelfOrReadOnly(owner(), false, ownerID))
	assert.Error(t, SelfOrReadOnly(stranger(), false, ownerID))
	// Staff can read but not write on someone else's behalf.
	assert.NoError(t, SelfOrReadOnly(staff(), true, ownerID))
	assert.Error(t, SelfOrReadOnly(staff(), false, ownerID))
}

func TestSelfOrAdminReadOnly(t *testing.T) {
	assert.NoError(t, SelfOrAdminReadOnly(owner(), true, ownerID))
	assert.NoError(t, SelfOrAdminReadOnly(owner(), false, ownerID))
	assert.NoError(t, SelfOrAdminReadOnly(staff(), true, ownerID))
	assert.Error(t, SelfOrAdminReadOnly(staff(), false, ownerID))
	assert.Error(t, SelfOrAdminReadOnly(stranger(), true, ownerID))
	assert.Error(t, SelfOrAdminReadOnly(nil, true, ownerID))
}

func TestAdminOnly(t *testing.T) {
	assert.NoError(t, AdminOnly(staff(), true, uuid.Nil))
	assert.Error(t, AdminOnly(owner(), true, uuid.Nil))
	assert.Error(t, AdminOnly(nil, true, uuid.Nil))
}
