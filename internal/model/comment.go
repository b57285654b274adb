package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID      uuid.UUID `gorm:"type:uuid;not null" json:"post_id"`
	Post        Post      `gorm:"constraint:OnDelete:CASCADE" json:"post,omitempty"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author      User      `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Comment     string    `gorm:"size:150;not null" json:"comment"`
	Replies     []Reply   `gorm:"foreignKey:CommentID" json:"replies,omitempty"`
	CommentedAt time.Time `gorm:"autoCreateTime" json:"commented_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

// ShortComment is the derived summary text used in nested views.
func (c *Comment) ShortComment() string {
	return Truncate(c.Comment, ShortTextSpaces)
}
