package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post status values. A post starts as a draft and, once published, never
// goes back.
const (
	StatusDraft     = "d"
	StatusPublished = "p"
)

type Post struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:50;not null" json:"title"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author      User      `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Thumbnail   *string   `gorm:"type:text" json:"thumbnail,omitempty"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:1;not null;default:d" json:"status"`
	Tags        []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`
	Comments    []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	return
}

// Published reports whether the post is visible to everyone.
func (p *Post) Published() bool {
	return p.Status == StatusPublished
}

// ShortDescription is the derived, never persisted list-view text.
func (p *Post) ShortDescription() string {
	return Truncate(p.Description, ShortTextSpaces)
}
