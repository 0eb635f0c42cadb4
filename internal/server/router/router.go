package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skiphire/skip-browser/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.BrowseHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.POST("/sessions", handler.CreateSession)
		api.GET("/sessions/:id", handler.GetSession)
		api.POST("/sessions/:id/location", handler.SetLocation)
		api.GET("/sessions/:id/skips", handler.ListSkips)
		api.PUT("/sessions/:id/filters", handler.UpdateFilters)
		api.DELETE("/sessions/:id/filters", handler.ClearFilters)
		api.PUT("/sessions/:id/sort", handler.SetSort)
		api.PUT("/sessions/:id/selection", handler.Select)
		api.DELETE("/sessions/:id/selection", handler.Deselect)
		api.GET("/sessions/:id/selection", handler.GetQuote)
		api.POST("/sessions/:id/checkout", handler.Checkout)
		api.GET("/content", handler.Content)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
