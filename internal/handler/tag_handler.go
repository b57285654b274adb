package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openblogdev/blogapi/internal/service"
	"github.com/openblogdev/blogapi/pkg/response"
)

type TagHandler struct {
	tags service.TagService
}

func NewTagHandler(tags service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

func (h *TagHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.tags.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
