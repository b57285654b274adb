package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/middleware"
	"github.com/openblogdev/blogapi/internal/service"
	"github.com/openblogdev/blogapi/pkg/response"
)

type PostHandler struct {
	posts    service.PostService
	comments service.CommentService
	tags     service.TagService
}

func NewPostHandler(posts service.PostService, comments service.CommentService, tags service.TagService) *PostHandler {
	return &PostHandler{posts: posts, comments: comments, tags: tags}
}

func (h *PostHandler) List(c *gin.Context) {
	var q dto.PostFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	opts, page, pageSize := listOptions(c)
	q.Ordering = opts.Ordering

	items, total, err := h.posts.List(c.Request.Context(), middleware.Actor(c), q, opts.Offset, opts.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(c, total, page, pageSize, items))
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.posts.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.posts.Update(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	opts, page, pageSize := listOptions(c)
	items, total, err := h.comments.ListForPost(c.Request.Context(), middleware.Actor(c), id, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(c, total, page, pageSize, items))
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.comments.CreateForPost(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *PostHandler) ListTags(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	opts, page, pageSize := listOptions(c)
	items, total, err := h.tags.ListForPost(c.Request.Context(), middleware.Actor(c), id, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(c, total, page, pageSize, items))
}
