package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/openblogdev/blogapi/internal/model"
)

type CreateCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=150"`
}

type UpdateCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=150"`
}

// CreateUserCommentRequest comes through the user-scoped route, where the
// target post is part of the payload instead of the path.
type CreateUserCommentRequest struct {
	Post    uuid.UUID `json:"post" binding:"required"`
	Comment string    `json:"comment" binding:"required,max=150"`
}

// CommentSummary is the nested shape embedded in post details.
type CommentSummary struct {
	ID           uuid.UUID `json:"id"`
	Author       string    `json:"author"`
	ShortComment string    `json:"short_comment"`
	RepliesCount int64     `json:"replies_count"`
}

type CommentListItem struct {
	ID           uuid.UUID     `json:"id"`
	Author       AuthorSummary `json:"author"`
	Comment      string        `json:"comment"`
	RepliesCount int64         `json:"replies_count"`
	CommentedAt  time.Time     `json:"commented_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type CommentDetail struct {
	ID          uuid.UUID      `json:"id"`
	Post        PostSummary    `json:"post"`
	Author      AuthorSummary  `json:"author"`
	Comment     string         `json:"comment"`
	Replies     []ReplySummary `json:"replies"`
	CommentedAt time.Time      `json:"commented_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func NewCommentSummary(comment *model.Comment, repliesCount int64) CommentSummary {
	return CommentSummary{
		ID:           comment.ID,
		Author:       comment.Author.Username,
		ShortComment: comment.ShortComment(),
		RepliesCount: repliesCount,
	}
}

func NewCommentListItem(comment *model.Comment, repliesCount int64) CommentListItem {
	return CommentListItem{
		ID:           comment.ID,
		Author:       NewAuthorSummary(&comment.Author),
		Comment:      comment.Comment,
		RepliesCount: repliesCount,
		CommentedAt:  comment.CommentedAt,
		UpdatedAt:    comment.UpdatedAt,
	}
}

func NewCommentDetail(comment *model.Comment, replies []ReplySummary) CommentDetail {
	return CommentDetail{
		ID:          comment.ID,
		Post:        NewPostSummary(&comment.Post),
		Author:      NewAuthorSummary(&comment.Author),
		Comment:     comment.Comment,
		Replies:     replies,
		CommentedAt: comment.CommentedAt,
		UpdatedAt:   comment.UpdatedAt,
	}
}
