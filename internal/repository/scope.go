package repository

import (
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/model"
)

// VisibleTo narrows a post query to what the requester may see: staff see
// everything, authenticated users see published posts plus their own drafts,
// anonymous requesters see published posts only.
func VisibleTo(actor *model.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case actor == nil:
			return db.Where("posts.status = ?", model.StatusPublished)
		case actor.IsStaff:
			return db
		default:
			return db.Where("posts.status = ? OR posts.author_id = ?", model.StatusPublished, actor.ID)
		}
	}
}
