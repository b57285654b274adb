package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/middleware"
	"github.com/openblogdev/blogapi/internal/service"
	"github.com/openblogdev/blogapi/pkg/response"
)

type UserHandler struct {
	users    service.UserService
	posts    service.PostService
	comments service.CommentService
	replies  service.ReplyService
}

func NewUserHandler(
	users service.UserService,
	posts service.PostService,
	comments service.CommentService,
	replies service.ReplyService,
) *UserHandler {
	return &UserHandler{users: users, posts: posts, comments: comments, replies: replies}
}

func (h *UserHandler) List(c *gin.Context) {
	opts, page, pageSize := listOptions(c)
	items, total, err := h.users.List(c.Request.Context(), middleware.Actor(c), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(c, total, page, pageSize, items))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.users.Get(c.Request.Context(), middleware.Actor(c), id, middleware.Version(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.users.Update(c.Request.Context(), middleware.Actor(c), id, req, middleware.Version(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListPosts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	opts, page, pageSize := listOptions(c)
	items, total, err := h.posts.ListForUser(c.Request.Context(), middleware.Actor(c), id, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(c, total, page, pageSize, items))
}

func (h *UserHandler) CreatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.posts.CreateForUser(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *UserHandler) ListComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	opts, page, pageSize := listOptions(c)
	items, total, err := h.comments.ListForUser(c.Request.Context(), middleware.Actor(c), id, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(c, total, page, pageSize, items))
}

func (h *UserHandler) CreateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateUserCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.comments.CreateForUser(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *UserHandler) ListReplies(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	opts, page, pageSize := listOptions(c)
	items, total, err := h.replies.ListForUser(c.Request.Context(), middleware.Actor(c), id, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPage(c, total, page, pageSize, items))
}

func (h *UserHandler) CreateReply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateUserReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.replies.CreateForUser(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}
