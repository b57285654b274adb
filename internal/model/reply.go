package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reply belongs to a Comment thread. Addsign is an optional back-reference
// to the reply it responds to; deleting the target clears the reference
// instead of cascading.
type Reply struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CommentID uuid.UUID  `gorm:"type:uuid;not null" json:"comment_id"`
	Comment   Comment    `gorm:"constraint:OnDelete:CASCADE" json:"comment,omitempty"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null" json:"author_id"`
	Author    User       `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty"`
	AddsignID *uuid.UUID `gorm:"type:uuid" json:"addsign_id,omitempty"`
	Addsign   *Reply     `gorm:"foreignKey:AddsignID;constraint:OnDelete:SET NULL" json:"addsign,omitempty"`
	Adds      []Reply    `gorm:"foreignKey:AddsignID" json:"adds,omitempty"`
	Reply     string     `gorm:"size:150;not null" json:"reply"`
	RepliedAt time.Time  `gorm:"autoCreateTime" json:"replied_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Reply) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

// ShortReply is the derived summary text used in nested views.
func (r *Reply) ShortReply() string {
	return Truncate(r.Reply, ShortTextSpaces)
}
