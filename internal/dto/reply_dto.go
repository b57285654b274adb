package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/openblogdev/blogapi/internal/model"
)

type CreateReplyRequest struct {
	Reply string `json:"reply" binding:"required,max=150"`
	// Addsign optionally references another reply in the same thread.
	// Ignored on the adds route, where the parent reply is forced.
	Addsign *uuid.UUID `json:"addsign"`
}

type UpdateReplyRequest struct {
	Reply string `json:"reply" binding:"required,max=150"`
}

// CreateUserReplyRequest comes through the user-scoped route, where the
// target comment is part of the payload instead of the path.
type CreateUserReplyRequest struct {
	Comment uuid.UUID  `json:"comment" binding:"required"`
	Addsign *uuid.UUID `json:"addsign"`
	Reply   string     `json:"reply" binding:"required,max=150"`
}

// ReplySummary is the nested shape embedded in details and addsign fields.
type ReplySummary struct {
	ID         uuid.UUID `json:"id"`
	Author     string    `json:"author"`
	ShortReply string    `json:"short_reply"`
	AddsCount  int64     `json:"adds_count"`
}

type ReplyListItem struct {
	ID        uuid.UUID     `json:"id"`
	Author    AuthorSummary `json:"author"`
	Addsign   *ReplySummary `json:"addsign"`
	Reply     string        `json:"reply"`
	AddsCount int64         `json:"adds_count"`
	RepliedAt time.Time     `json:"replied_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type ReplyDetail struct {
	ID        uuid.UUID      `json:"id"`
	CommentID uuid.UUID      `json:"comment_id"`
	Author    AuthorSummary  `json:"author"`
	Addsign   *ReplySummary  `json:"addsign"`
	Adds      []ReplySummary `json:"adds"`
	Reply     string         `json:"reply"`
	RepliedAt time.Time      `json:"replied_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewReplySummary(reply *model.Reply, addsCount int64) ReplySummary {
	return ReplySummary{
		ID:         reply.ID,
		Author:     reply.Author.Username,
		ShortReply: reply.ShortReply(),
		AddsCount:  addsCount,
	}
}

func NewReplyListItem(reply *model.Reply, addsCount int64, addsign *ReplySummary) ReplyListItem {
	return ReplyListItem{
		ID:        reply.ID,
		Author:    NewAuthorSummary(&reply.Author),
		Addsign:   addsign,
		Reply:     reply.Reply,
		AddsCount: addsCount,
		RepliedAt: reply.RepliedAt,
		UpdatedAt: reply.UpdatedAt,
	}
}

func NewReplyDetail(reply *model.Reply, addsign *ReplySummary, adds []ReplySummary) ReplyDetail {
	return ReplyDetail{
		ID:        reply.ID,
		CommentID: reply.CommentID,
		Author:    NewAuthorSummary(&reply.Author),
		Addsign:   addsign,
		Adds:      adds,
		Reply:     reply.Reply,
		RepliedAt: reply.RepliedAt,
		UpdatedAt: reply.UpdatedAt,
	}
}
