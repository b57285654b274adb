package search

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hitFor(t *testing.T, doc postDoc) meilisearch.Hit {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	hit := meilisearch.Hit{}
	require.NoError(t, json.Unmarshal(raw, &hit))
	return hit
}

func TestHitIDs(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	hits := []meilisearch.Hit{
		hitFor(t, postDoc{ID: first.String(), Title: "go generics"}),
		hitFor(t, postDoc{ID: second.String(), Title: "gin middleware"}),
	}

	ids := hitIDs(hits)
	assert.Equal(t, []uuid.UUID{first, second}, ids)
}

func TestHitIDsSkipsMalformedDocuments(t *testing.T) {
	valid := uuid.New()
	hits := []meilisearch.Hit{
		hitFor(t, postDoc{ID: "not-a-uuid", Title: "broken"}),
		{"id": json.RawMessage(`42`)},
		hitFor(t, postDoc{ID: valid.String(), Title: "kept"}),
	}

	ids := hitIDs(hits)
	assert.Equal(t, []uuid.UUID{valid}, ids)
}

func TestHitIDsEmpty(t *testing.T) {
	ids := hitIDs(nil)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}
