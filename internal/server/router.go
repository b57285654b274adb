package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openblogdev/blogapi/internal/config"
	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/handler"
	"github.com/openblogdev/blogapi/internal/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Post    *handler.PostHandler
	Comment *handler.CommentHandler
	Reply   *handler.ReplyHandler
	User    *handler.UserHandler
	Tag     *handler.TagHandler
}

// NewRouter assembles the full route table. The same resources are mounted
// once per API version; handlers read the version off the context to shape
// version-dependent payloads.
func NewRouter(cfg *config.Config, h Handlers, auth *middleware.AuthMiddleware, limiter *middleware.RateLimiter) *gin.Engine {
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.Use(auth.Authenticate())

	mount(router.Group("/api/v1"), dto.V1, h, limiter)
	mount(router.Group("/api/v2"), dto.V2, h, limiter)

	return router
}

func mount(api *gin.RouterGroup, version dto.Version, h Handlers, limiter *middleware.RateLimiter) {
	api.Use(middleware.APIVersion(version))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	posts := api.Group("/posts")
	posts.Use(limiter.Limit())
	{
		posts.GET("", h.Post.List)
		posts.POST("", h.Post.Create)
		posts.GET("/:id", h.Post.Get)
		posts.PUT("/:id", h.Post.Update)
		posts.DELETE("/:id", h.Post.Delete)
		posts.GET("/:id/comments", h.Post.ListComments)
		posts.POST("/:id/comments", h.Post.CreateComment)
		posts.GET("/:id/tags", h.Post.ListTags)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/:id", h.Comment.Get)
		comments.PUT("/:id", h.Comment.Update)
		comments.DELETE("/:id", h.Comment.Delete)
		comments.GET("/:id/replies", h.Comment.ListReplies)
		comments.POST("/:id/replies", h.Comment.CreateReply)
	}

	replies := api.Group("/replies")
	{
		replies.GET("/:id", h.Reply.Get)
		replies.PUT("/:id", h.Reply.Update)
		replies.DELETE("/:id", h.Reply.Delete)
		replies.GET("/:id/adds", h.Reply.ListAdds)
		replies.POST("/:id/adds", h.Reply.CreateAdd)
	}

	tags := api.Group("/tags")
	{
		tags.GET("/:id", h.Tag.Get)
	}

	users := api.Group("/users")
	{
		users.GET("", h.User.List)
		users.POST("", h.Auth.Register)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
		users.GET("/:id/posts", h.User.ListPosts)
		users.POST("/:id/posts", h.User.CreatePost)
		users.GET("/:id/comments", h.User.ListComments)
		users.POST("/:id/comments", h.User.CreateComment)
		users.GET("/:id/replies", h.User.ListReplies)
		users.POST("/:id/replies", h.User.CreateReply)
	}
}
