package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func listContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestListOptionsDefaults(t *testing.T) {
	opts, page, pageSize := listOptions(listContext("/comments"))

	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)
	assert.Empty(t, opts.Ordering)
	assert.Empty(t, opts.Author)
	assert.Equal(t, 0, opts.Offset)
	assert.Equal(t, 20, opts.Limit)
}

func TestListOptionsQueryParameters(t *testing.T) {
	opts, page, pageSize := listOptions(listContext(
		"/comments?author=alice&ordering=-commented_at&page=3&page_size=10"))

	assert.Equal(t, "alice", opts.Author)
	assert.Equal(t, "-commented_at", opts.Ordering)
	assert.Equal(t, 3, page)
	assert.Equal(t, 10, pageSize)
	assert.Equal(t, 20, opts.Offset)
	assert.Equal(t, 10, opts.Limit)
}
