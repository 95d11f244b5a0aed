package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fitgpt/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
		corsMiddleware(cfg.HTTP.AllowOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/items", handler.ListItems)
		api.POST("/items", handler.AddItem)
		api.PUT("/items/:id", handler.UpdateItem)
		api.DELETE("/items/:id", handler.ArchiveItem)
		api.POST("/items/:id/worn", handler.MarkWorn)
		api.PUT("/items/:id/image", handler.UploadImage)
		api.GET("/items/:id/explanation", handler.ExplainItem)

		api.GET("/preferences", handler.GetPreferences)
		api.PUT("/preferences", handler.UpdatePreferences)

		api.POST("/recommendations", handler.Recommend)

		api.GET("/outfits", handler.ListOutfits)
		api.POST("/outfits", handler.SaveOutfit)

		api.POST("/chat", handler.Chat)
		api.POST("/chat/stream", handler.ChatStream)

		api.GET("/images/*key", handler.ServeImage)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
