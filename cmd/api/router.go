package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"libcatalog-backend/internal/shared/middleware"
	"libcatalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupBookRoutes(v1, c)
		setupAuthorRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupBookTypeRoutes(v1, c)
	}

	return router
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.POST("", c.BookHandler.Create)
		books.GET("", c.BookHandler.List)
		books.GET("/count", c.BookHandler.Count)
		books.GET("/:id", c.BookHandler.GetByID)
		books.PATCH("/:id", c.BookHandler.Update)
		books.DELETE("/:id", c.BookHandler.Delete)
	}
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)
	}
}

func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categories")
	{
		categories.POST("", c.CategoryHandler.Create)
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:id", c.CategoryHandler.GetByID)
	}
}

func setupBookTypeRoutes(v1 *gin.RouterGroup, c *container.Container) {
	types := v1.Group("/types")
	{
		types.POST("", c.BookTypeHandler.Create)
		types.GET("", c.BookTypeHandler.List)
		types.GET("/:id", c.BookTypeHandler.GetByID)
	}
}

// healthCheckHandler reports overall status plus each backing service. The
// database down means degraded with a 503; redis or the embedding provider
// being down is reported but does not fail the check, the API still serves
// reads without them.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		embeddingStatus := "ok"
		if appCtx.Embedding == nil || !appCtx.Embedding.IsAvailable(c.Request.Context()) {
			embeddingStatus = "unavailable"
		}

		health["services"] = gin.H{
			"database":  dbStatus,
			"redis":     redisStatus,
			"embedding": embeddingStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
