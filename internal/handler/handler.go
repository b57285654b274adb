// Package handler contains the gin HTTP handlers. Handlers bind and
// validate input, delegate to the service layer, and shape responses;
// permission and scoping decisions live below them.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openblogdev/blogapi/internal/repository"
	"github.com/openblogdev/blogapi/pkg/apperror"
	"github.com/openblogdev/blogapi/pkg/response"
	"github.com/openblogdev/blogapi/pkg/validator"
)

// pathID parses a uuid path parameter. A malformed identifier can never
// name an existing resource, so it reads as missing.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func bindError(c *gin.Context, err error) {
	response.Error(c, apperror.New(http.StatusBadRequest, validator.FormatValidationError(err), apperror.ErrValidation))
}

// listOptions derives offset/limit from the pagination query parameters and
// picks up the requested ordering and author filter.
func listOptions(c *gin.Context) (repository.ListOptions, int, int) {
	page, pageSize := response.PageParams(c)
	return repository.ListOptions{
		Ordering: c.Query("ordering"),
		Author:   c.Query("author"),
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	}, page, pageSize
}
