// Package search maintains the post search index. Listing falls back to SQL
// filtering when no index is configured, so the index is an accelerator, not
// a dependency.
package search

import (
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/rs/zerolog/log"

	"github.com/openblogdev/blogapi/internal/model"
)

const postIndex = "posts"

// PostIndexer keeps the search index in sync with posts and answers
// full-text queries with matching post ids.
type PostIndexer interface {
	IndexPost(post *model.Post) error
	DeletePost(id uuid.UUID) error
	SearchPosts(query string) ([]uuid.UUID, error)
}

type postDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
}

type meiliIndexer struct {
	client meilisearch.ServiceManager
}

// NewMeiliIndexer configures the posts index on the given client.
func NewMeiliIndexer(client meilisearch.ServiceManager) PostIndexer {
	searchable := []string{"title", "description", "author"}
	if _, err := client.Index(postIndex).UpdateSearchableAttributes(&searchable); err != nil {
		log.Warn().Err(err).Msg("failed to update posts searchable attributes")
	}
	return &meiliIndexer{client: client}
}

func (s *meiliIndexer) IndexPost(post *model.Post) error {
	doc := postDoc{
		ID:          post.ID.String(),
		Title:       post.Title,
		Description: post.Description,
		Author:      post.Author.Username,
	}
	primaryKey := "id"
	_, err := s.client.Index(postIndex).AddDocuments([]postDoc{doc}, &primaryKey)
	return err
}

func (s *meiliIndexer) DeletePost(id uuid.UUID) error {
	_, err := s.client.Index(postIndex).DeleteDocument(id.String())
	return err
}

func (s *meiliIndexer) SearchPosts(query string) ([]uuid.UUID, error) {
	resp, err := s.client.Index(postIndex).Search(query, &meilisearch.SearchRequest{
		Limit: 1000,
	})
	if err != nil {
		return nil, err
	}

	return hitIDs(resp.Hits), nil
}

// hitIDs extracts post ids from raw index hits, skipping malformed documents.
func hitIDs(hits []meilisearch.Hit) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		var doc postDoc
		if err := hit.Decode(&doc); err != nil {
			continue
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
