package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// NewRouter wires every API route behind the shared middleware chain.
func NewRouter(deps Deps, allowedOrigins []string) *gin.Engine {
	deps = deps.withDefaults()

	articleHandler := NewArticleHandler(deps.Articles, deps.Injector)
	demoHandler := NewDemoHandler(deps)

	r := gin.New()
	r.Use(requestID(), accessLog(), recovery())

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", ViewerHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.GET("/health", articleHandler.GetHealth)
	api.GET("/articles", articleHandler.GetArticles)
	api.GET("/articles/:id", articleHandler.GetArticle)
	api.GET("/search", articleHandler.Search)
	api.GET("/recommendation", articleHandler.GetRecommendations)
	api.POST("/analyze", demoHandler.Analyze)
	api.GET("/flaky-service", demoHandler.FlakyService)
	api.GET("/database-query", demoHandler.DatabaseQuery)
	api.GET("/external-weather", demoHandler.ExternalWeather)
	api.POST("/file-operations", demoHandler.FileOperations)
	api.GET("/cache-demo/:key", demoHandler.CacheDemo)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString("request_id"),
		)
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic serving request", "error", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
