package container

import (
	"context"
	"fmt"
	"time"

	"libcatalog-backend/internal/config"
	infraCache "libcatalog-backend/internal/infrastructure/cache"
	"libcatalog-backend/internal/infrastructure/database"
	"libcatalog-backend/internal/infrastructure/embedding"
	"libcatalog-backend/pkg/cache"
	"libcatalog-backend/pkg/logger"

	authorHandler "libcatalog-backend/internal/domains/author/handler"
	authorRepo "libcatalog-backend/internal/domains/author/repository"
	authorService "libcatalog-backend/internal/domains/author/service"
	bookHandler "libcatalog-backend/internal/domains/book/handler"
	bookRepo "libcatalog-backend/internal/domains/book/repository"
	bookService "libcatalog-backend/internal/domains/book/service"
	booktypeHandler "libcatalog-backend/internal/domains/booktype/handler"
	booktypeRepo "libcatalog-backend/internal/domains/booktype/repository"
	booktypeService "libcatalog-backend/internal/domains/booktype/service"
	categoryHandler "libcatalog-backend/internal/domains/category/handler"
	categoryRepo "libcatalog-backend/internal/domains/category/repository"
	categoryService "libcatalog-backend/internal/domains/category/service"
)

// Container is the root of the dependency graph. Everything is a
// singleton: config first, then infrastructure, then repositories,
// services, handlers; each layer only sees the one below it.
type Container struct {
	Config    *config.Config
	DB        *database.PostgresDB
	Cache     cache.Cache
	Embedding bookService.EmbeddingService

	AuthorRepo   authorRepo.RepositoryInterface
	CategoryRepo categoryRepo.RepositoryInterface
	BookTypeRepo booktypeRepo.RepositoryInterface
	BookRepo     bookRepo.RepositoryInterface

	AuthorService   authorService.ServiceInterface
	CategoryService categoryService.ServiceInterface
	BookTypeService booktypeService.ServiceInterface
	BookService     bookService.ServiceInterface

	AuthorHandler   *authorHandler.AuthorHandler
	CategoryHandler *categoryHandler.CategoryHandler
	BookTypeHandler *booktypeHandler.BookTypeHandler
	BookHandler     *bookHandler.BookHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	// Redis being down degrades to uncached reads, it does not stop startup.
	if err := redisCache.Ping(context.Background()); err != nil {
		logger.Warn("redis connection failed, running without warm cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.Cache = redisCache

	c.Embedding = embedding.NewClient(cfg.Embedding.BaseURL, cfg.Embedding.Timeout)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool, c.Cache)
	c.BookTypeRepo = booktypeRepo.NewPostgresRepository(pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(pool, c.Cache)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)
	c.BookTypeService = booktypeService.NewBookTypeService(c.BookTypeRepo)
	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.AuthorService,
		c.CategoryService,
		c.BookTypeService,
		c.Embedding,
	)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.BookTypeHandler = booktypeHandler.NewBookTypeHandler(c.BookTypeService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
}

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Warn("failed to close redis", map[string]interface{}{"error": err.Error()})
		}
	}
	logger.Info("container cleanup completed", nil)
}
