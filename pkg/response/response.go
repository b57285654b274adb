package response

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/openblogdev/blogapi/pkg/apperror"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is the envelope wrapping every list response.
type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// PageParams reads page/page_size from the query string. page_size defaults
// to 20 and is capped at 100; the sentinel value "max" selects the cap.
func PageParams(c *gin.Context) (page, pageSize int) {
	page = 1
	if raw := c.Query("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	pageSize = DefaultPageSize
	if raw := c.Query("page_size"); raw != "" {
		if raw == "max" {
			return page, MaxPageSize
		}
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// NewPage builds the pagination envelope, deriving next/previous links from
// the request URL.
func NewPage(c *gin.Context, count int64, page, pageSize int, results any) Page {
	p := Page{Count: count, Results: results}

	if int64(page*pageSize) < count {
		p.Next = pageURL(c.Request.URL, page+1)
	}
	if page > 1 {
		p.Previous = pageURL(c.Request.URL, page-1)
	}
	return p
}

func pageURL(u *url.URL, page int) *string {
	clone := *u
	q := clone.Query()
	q.Set("page", strconv.Itoa(page))
	clone.RawQuery = q.Encode()
	s := clone.String()
	return &s
}

// Error writes a standardized error response.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("internal error")
	}

	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
