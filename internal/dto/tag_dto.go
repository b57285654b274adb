package dto

import (
	"github.com/google/uuid"

	"github.com/openblogdev/blogapi/internal/model"
)

type TagListItem struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// TagDetail embeds the tagged posts' list shapes.
type TagDetail struct {
	ID    uuid.UUID      `json:"id"`
	Title string         `json:"title"`
	Posts []PostListItem `json:"posts"`
}

func NewTagListItem(tag *model.Tag) TagListItem {
	return TagListItem{ID: tag.ID, Title: tag.Title}
}

func NewTagDetail(tag *model.Tag, posts []PostListItem) TagDetail {
	return TagDetail{ID: tag.ID, Title: tag.Title, Posts: posts}
}
