package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/middleware"
	"github.com/openblogdev/blogapi/internal/service"
	"github.com/openblogdev/blogapi/pkg/response"
)

type ReplyHandler struct {
	replies service.ReplyService
}

func NewReplyHandler(replies service.ReplyService) *ReplyHandler {
	return &ReplyHandler{replies: replies}
}

func (h *ReplyHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.replies.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ReplyHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.replies.Update(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ReplyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.replies.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReplyHandler) ListAdds(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	opts, page, pageSize := listOptions(c)
	items, total, err := h.replies.ListAdds(c.Request.Context(), middleware.Actor(c), id, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(c, total, page, pageSize, items))
}

func (h *ReplyHandler) CreateAdd(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.replies.CreateAdd(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}
