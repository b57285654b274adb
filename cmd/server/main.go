package main

import (
	"os"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/config"
	"github.com/openblogdev/blogapi/internal/handler"
	"github.com/openblogdev/blogapi/internal/middleware"
	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/repository"
	"github.com/openblogdev/blogapi/internal/search"
	"github.com/openblogdev/blogapi/internal/server"
	"github.com/openblogdev/blogapi/internal/service"
	"github.com/openblogdev/blogapi/pkg/database"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := database.Connect(database.Options{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	if cfg.AppEnv == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin user")
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		redisClient = redis.NewClient(redisOpts)
	} else {
		log.Warn().Msg("REDIS_URL not set, rate limiting disabled")
	}

	var indexer search.PostIndexer
	if cfg.MeiliSearchHost != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		indexer = search.NewMeiliIndexer(meiliClient)
	} else {
		log.Warn().Msg("MEILISEARCH_HOST not set, falling back to sql search")
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	tagRepo := repository.NewTagRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, postRepo, commentRepo)
	postService := service.NewPostService(postRepo, commentRepo, replyRepo, tagRepo, userRepo, indexer)
	commentService := service.NewCommentService(commentRepo, postRepo, replyRepo, userRepo)
	replyService := service.NewReplyService(replyRepo, commentRepo, userRepo)
	tagService := service.NewTagService(tagRepo, postRepo, commentRepo)

	handlers := server.Handlers{
		Auth:    handler.NewAuthHandler(authService, userService),
		Post:    handler.NewPostHandler(postService, commentService, tagService),
		Comment: handler.NewCommentHandler(commentService, replyService),
		Reply:   handler.NewReplyHandler(replyService),
		User:    handler.NewUserHandler(userService, postService, commentService, replyService),
		Tag:     handler.NewTagHandler(tagService),
	}

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)
	limiter := middleware.NewRateLimiter(redisClient, "posts", cfg.RateLimitRequests, cfg.RateLimitWindow)

	router := server.NewRouter(cfg, handlers, authMiddleware, limiter)

	log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Post{},
		&model.Comment{},
		&model.Reply{},
	)
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@localhost").
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     "admin",
		Email:        "admin@localhost",
		PasswordHash: string(hash),
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info().Str("email", admin.Email).Msg("admin user seeded")
	return nil
}
