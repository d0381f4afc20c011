package config

import (
	"fmt"
	"os"

	"BlogPublisher/database/postgres"
	authHandler "BlogPublisher/internal/api/auth/handler"
	authRepository "BlogPublisher/internal/api/auth/repository"
	authService "BlogPublisher/internal/api/auth/service"
	blogHandler "BlogPublisher/internal/api/blog/handler"
	blogRepository "BlogPublisher/internal/api/blog/repository"
	blogService "BlogPublisher/internal/api/blog/service"
	categoryHandler "BlogPublisher/internal/api/category/handler"
	categoryRepository "BlogPublisher/internal/api/category/repository"
	categoryService "BlogPublisher/internal/api/category/service"
	commentHandler "BlogPublisher/internal/api/comment/handler"
	commentRepository "BlogPublisher/internal/api/comment/repository"
	commentService "BlogPublisher/internal/api/comment/service"
	likeHandler "BlogPublisher/internal/api/like/handler"
	likeRepository "BlogPublisher/internal/api/like/repository"
	likeService "BlogPublisher/internal/api/like/service"
	"BlogPublisher/internal/middleware"
	"BlogPublisher/pkg/bcrypt"
	"BlogPublisher/pkg/redis"
	"BlogPublisher/pkg/render"
	"BlogPublisher/pkg/s3"
	"BlogPublisher/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	s3Client    s3.ItfS3
	renderer    render.IRenderer
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase also applies pending migrations when DB_MIGRATIONS_PATH is set.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		if path := os.Getenv("DB_MIGRATIONS_PATH"); path != "" {
			if err := postgres.ApplyMigrations(db, path); err != nil {
				return err
			}
			if s.log != nil {
				s.log.Infof("Migrations applied from %s", path)
			}
		}

		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithRenderer() ServerOption {
	return func(s *Server) error {
		s.renderer = render.New()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.validator, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, authServices, s.middleware)

	// Category
	categoryRepo := categoryRepository.New(s.db, s.log)
	categoryServices := categoryService.NewCategoriesService(s.log, categoryRepo, s.redisServer, s.validator, s.utils)
	categoryHandlers := categoryHandler.New(s.log, s.middleware, categoryServices)

	// Engagement
	likeRepo := likeRepository.New(s.db, s.log)
	likeServices := likeService.NewLikesService(s.log, likeRepo, s.utils)
	likeHandlers := likeHandler.New(s.log, s.middleware, likeServices)

	commentRepo := commentRepository.New(s.db, s.log)
	commentServices := commentService.NewCommentsService(s.log, commentRepo, s.validator, s.utils)
	commentHandlers := commentHandler.New(s.log, s.middleware, commentServices)

	// Blog
	blogRepo := blogRepository.New(s.db, s.log)
	blogServices := blogService.NewBlogsService(s.log, blogRepo, likeServices, commentServices, s.s3Client, s.renderer, s.validator, s.utils)
	blogHandlers := blogHandler.New(s.log, s.middleware, blogServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, categoryHandlers, likeHandlers, commentHandlers, blogHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	s.engine.Use(s.middleware.NewMetricsMiddleware())

	s.engine.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	if err := s.engine.Shutdown(); err != nil {
		return err
	}
	if s.redisServer != nil {
		if err := s.redisServer.Close(); err != nil {
			s.log.Warnf("Failed to close redis: %v", err)
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
