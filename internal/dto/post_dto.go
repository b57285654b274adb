package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/openblogdev/blogapi/internal/model"
)

type CreatePostRequest struct {
	Title       string   `json:"title" binding:"required,max=50"`
	Description string   `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status" binding:"omitempty,oneof=d p"`
}

// UpdatePostRequest is a full replacement payload. Setting status back to
// draft on a published post is ignored, not rejected.
type UpdatePostRequest struct {
	Title       string   `json:"title" binding:"required,max=50"`
	Description string   `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status" binding:"omitempty,oneof=d p"`
}

// PostFilterQuery are the post list query parameters.
type PostFilterQuery struct {
	Title       string `form:"title__icontains"`
	Description string `form:"description__icontains"`
	Status      string `form:"status" binding:"omitempty,oneof=d p"`
	Author      string `form:"author"`
	Topic       string `form:"topic__icontains"`
	Search      string `form:"search"`
	Ordering    string `form:"ordering"`
}

// PostListItem is the compact list shape. The full description is
// write-only at this level; clients get the derived short form.
type PostListItem struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Author           string    `json:"author"`
	Thumbnail        *string   `json:"thumbnail"`
	ShortDescription string    `json:"short_description"`
	Tags             []string  `json:"tags"`
	CommentsCount    int64     `json:"comments_count"`
	Status           string    `json:"status"`
}

type PostSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type PostDetail struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Author      AuthorSummary    `json:"author"`
	Thumbnail   *string          `json:"thumbnail"`
	Description string           `json:"description"`
	Comments    []CommentSummary `json:"comments"`
	Tags        []string         `json:"tags"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func NewPostListItem(post *model.Post, commentsCount int64) PostListItem {
	return PostListItem{
		ID:               post.ID,
		Title:            post.Title,
		Author:           post.Author.Username,
		Thumbnail:        post.Thumbnail,
		ShortDescription: post.ShortDescription(),
		Tags:             TagTitles(post.Tags),
		CommentsCount:    commentsCount,
		Status:           post.Status,
	}
}

func NewPostSummary(post *model.Post) PostSummary {
	return PostSummary{ID: post.ID, Title: post.Title}
}

func NewPostDetail(post *model.Post, comments []CommentSummary) PostDetail {
	return PostDetail{
		ID:          post.ID,
		Title:       post.Title,
		Author:      NewAuthorSummary(&post.Author),
		Thumbnail:   post.Thumbnail,
		Description: post.Description,
		Comments:    comments,
		Tags:        TagTitles(post.Tags),
		Status:      post.Status,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

// TagTitles flattens tags into their slug-like titles.
func TagTitles(tags []model.Tag) []string {
	return lo.Map(tags, func(t model.Tag, _ int) string { return t.Title })
}
