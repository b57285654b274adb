package response

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "/posts", 1, 20},
		{"explicit", "/posts?page=3&page_size=10", 3, 10},
		{"capped at max", "/posts?page_size=500", 1, 100},
		{"max sentinel", "/posts?page_size=max", 1, 100},
		{"garbage page ignored", "/posts?page=banana", 1, 20},
		{"negative page ignored", "/posts?page=-2", 1, 20},
		{"garbage page_size ignored", "/posts?page_size=banana", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := PageParams(testContext(t, tt.url))
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestNewPageLinks(t *testing.T) {
	c := testContext(t, "/posts?page=2&page_size=10")

	page := NewPage(c, 35, 2, 10, []string{})
	assert.Equal(t, int64(35), page.Count)

	require.NotNil(t, page.Next)
	assert.Contains(t, *page.Next, "page=3")
	require.NotNil(t, page.Previous)
	assert.Contains(t, *page.Previous, "page=1")
}

func TestNewPageFirstAndLast(t *testing.T) {
	first := NewPage(testContext(t, "/posts"), 35, 1, 20, nil)
	assert.Nil(t, first.Previous)
	require.NotNil(t, first.Next)

	last := NewPage(testContext(t, "/posts?page=2"), 35, 2, 20, nil)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
}

func TestNewPageSinglePage(t *testing.T) {
	page := NewPage(testContext(t, "/posts"), 5, 1, 20, nil)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
}
