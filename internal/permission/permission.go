// Package permission holds the composable authorization checks applied per
// request. A predicate decides on (requester, request safety, target owner)
// and either allows or denies with ErrForbidden; they are plain boolean
// logic, not middleware chains.
package permission

import (
	"github.com/google/uuid"

	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/pkg/apperror"
)

// Predicate evaluates one authorization rule. actor is nil for anonymous
// requesters; safe marks read-only (GET/HEAD/OPTIONS) requests; owner is the
// target object's author (or the target user itself), uuid.Nil when there is
// no resolved object yet.
type Predicate func(actor *model.User, safe bool, owner uuid.UUID) error

func isSelf(actor *model.User, owner uuid.UUID) bool {
	return actor != nil && owner != uuid.Nil && actor.ID == owner
}

func isStaff(actor *model.User) bool {
	return actor != nil && actor.IsStaff
}

// AuthenticatedOrReadOnly allows reads for everyone and writes for any
// authenticated requester.
func AuthenticatedOrReadOnly(actor *model.User, safe bool, _ uuid.UUID) error {
	if safe || actor != nil {
		return nil
	}
	return apperror.ErrForbidden
}

// OwnerOrReadOnly allows reads for everyone and writes only for the owner of
// the target object.
func OwnerOrReadOnly(actor *model.User, safe bool, owner uuid.UUID) error {
	if safe || isSelf(actor, owner) {
		return nil
	}
	return apperror.ErrForbidden
}

// SelfOrAdmin allows access for staff and for the target user themselves.
func SelfOrAdmin(actor *model.User, _ bool, target uuid.UUID) error {
	if isStaff(actor) || isSelf(actor, target) {
		return nil
	}
	return apperror.ErrForbidden
}

// SelfOrReadOnly allows reads for everyone and writes only for the target
// user themselves.
func SelfOrReadOnly(actor *model.User, safe bool, target uuid.UUID) error {
	if safe || isSelf(actor, target) {
		return nil
	}
	return apperror.ErrForbidden
}

// SelfOrAdminReadOnly gives the target user full access and staff read-only
// access.
func SelfOrAdminReadOnly(actor *model.User, safe bool, target uuid.UUID) error {
	if isSelf(actor, target) {
		return nil
	}
	if safe && isStaff(actor) {
		return nil
	}
	return apperror.ErrForbidden
}

// AdminOnly allows staff regardless of method.
func AdminOnly(actor *model.User, _ bool, _ uuid.UUID) error {
	if isStaff(actor) {
		return nil
	}
	return apperror.ErrForbidden
}
