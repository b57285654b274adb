package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/middleware"
	"github.com/openblogdev/blogapi/internal/service"
	"github.com/openblogdev/blogapi/pkg/response"
)

type CommentHandler struct {
	comments service.CommentService
	replies  service.ReplyService
}

func NewCommentHandler(comments service.CommentService, replies service.ReplyService) *CommentHandler {
	return &CommentHandler{comments: comments, replies: replies}
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.comments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.comments.Update(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) ListReplies(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	opts, page, pageSize := listOptions(c)
	items, total, err := h.replies.ListForComment(c.Request.Context(), middleware.Actor(c), id, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(c, total, page, pageSize, items))
}

func (h *CommentHandler) CreateReply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.replies.CreateForComment(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}
