// Package relation implements the generic list/create controller for child
// collections reached through a parent entity, e.g. the comments of a post
// or the replies of a comment. One controller shape serves every
// (parent, child, relation-name) triple; instantiations differ only in
// configuration. Relation names are resolved through an explicit lookup
// table, never through dynamic evaluation.
package relation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/permission"
	"github.com/openblogdev/blogapi/internal/repository"
	"github.com/openblogdev/blogapi/pkg/apperror"
)

// Lister reads one named child collection of a parent.
type Lister[P any, C any] func(ctx context.Context, parent *P, opts repository.ListOptions) ([]*C, int64, error)

// Page is a listed slice of children plus the unpaginated total.
type Page[C any] struct {
	Items []*C
	Total int64
}

// Config describes one reverse relation.
type Config[P any, C any] struct {
	// Name selects the child collection from Collections. Empty defaults
	// to the lower-cased child type name plus "s" (Comment -> "comments").
	Name string
	// Resolve looks up the parent by path identifier. Hand it a
	// pre-filtered resolver to restrict the reachable parent set.
	Resolve func(ctx context.Context, id uuid.UUID) (*P, error)
	// Collections maps relation names to the collections the parent
	// exposes. Name must match one of its keys.
	Collections map[string]Lister[P, C]
	// Create persists a new child. Leave nil for list-only relations.
	Create func(ctx context.Context, child *C) error
	// Stamp forces attribute values onto a new child (author, parent FK)
	// regardless of what the client supplied.
	Stamp func(actor *model.User, parent *P, child *C)
	// Ordering applies when the request carries no ordering of its own.
	Ordering string
	// Owner extracts the identity the permission predicate compares the
	// requester against, e.g. the user a user-scoped collection belongs
	// to. Nil means no owner at collection level.
	Owner func(parent *P) uuid.UUID
	// Permit guards the relation. Nil means any requester may access it.
	Permit permission.Predicate
}

// Controller serves list and create for one configured relation.
type Controller[P any, C any] struct {
	name    string
	resolve func(ctx context.Context, id uuid.UUID) (*P, error)
	list    Lister[P, C]
	create  func(ctx context.Context, child *C) error
	stamp   func(actor *model.User, parent *P, child *C)
	order   string
	owner   func(parent *P) uuid.UUID
	permit  permission.Predicate
}

// DefaultName derives the conventional relation name from the child type:
// the lower-cased type name, pluralized with a trailing "s".
func DefaultName[C any]() string {
	var zero C
	return strings.ToLower(reflect.TypeOf(zero).Name()) + "s"
}

// New builds a controller, resolving the relation name against the
// configured collection table.
func New[P any, C any](cfg Config[P, C]) (*Controller[P, C], error) {
	name := cfg.Name
	if name == "" {
		name = DefaultName[C]()
	}

	lister, ok := cfg.Collections[name]
	if !ok {
		var parent P
		return nil, fmt.Errorf("relation: %s has no collection named %q",
			reflect.TypeOf(parent).Name(), name)
	}
	if cfg.Resolve == nil {
		return nil, errors.New("relation: Resolve is required")
	}

	return &Controller[P, C]{
		name:    name,
		resolve: cfg.Resolve,
		list:    lister,
		create:  cfg.Create,
		stamp:   cfg.Stamp,
		order:   cfg.Ordering,
		owner:   cfg.Owner,
		permit:  cfg.Permit,
	}, nil
}

// MustNew is New for static wiring; a bad configuration is a programming
// error.
func MustNew[P any, C any](cfg Config[P, C]) *Controller[P, C] {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the resolved relation name.
func (c *Controller[P, C]) Name() string {
	return c.name
}

func (c *Controller[P, C]) ownerOf(parent *P) uuid.UUID {
	if c.owner == nil {
		return uuid.Nil
	}
	return c.owner(parent)
}

// Parent resolves the parent by path identifier, translating a missing or
// out-of-scope parent into NotFound.
func (c *Controller[P, C]) Parent(ctx context.Context, id uuid.UUID) (*P, error) {
	parent, err := c.resolve(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return parent, nil
}

// List resolves the parent and returns one ordered, filtered page of its
// children. Side-effect free.
func (c *Controller[P, C]) List(ctx context.Context, parentID uuid.UUID, actor *model.User, opts repository.ListOptions) (*Page[C], error) {
	parent, err := c.Parent(ctx, parentID)
	if err != nil {
		return nil, err
	}

	if c.permit != nil {
		if err := c.permit(actor, true, c.ownerOf(parent)); err != nil {
			return nil, err
		}
	}

	if opts.Ordering == "" {
		opts.Ordering = c.order
	}

	items, total, err := c.list(ctx, parent, opts)
	if err != nil {
		return nil, err
	}
	return &Page[C]{Items: items, Total: total}, nil
}

// Create persists child under the resolved parent. The configured stamp runs
// after validation, so injected values (author, parent key) always win over
// client-supplied ones. Parent resolution failures take precedence over
// permission denials.
func (c *Controller[P, C]) Create(ctx context.Context, parentID uuid.UUID, actor *model.User, child *C) (*C, error) {
	parent, err := c.Parent(ctx, parentID)
	if err != nil {
		return nil, err
	}

	if c.create == nil {
		return nil, apperror.ErrForbidden
	}
	if c.permit != nil {
		if err := c.permit(actor, false, c.ownerOf(parent)); err != nil {
			return nil, err
		}
	}

	if c.stamp != nil {
		c.stamp(actor, parent, child)
	}
	if err := c.create(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}
