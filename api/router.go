package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/clipgenius-go/api/handlers"
	"github.com/yourusername/clipgenius-go/api/middleware"
	"github.com/yourusername/clipgenius-go/internal/app"
	"github.com/yourusername/clipgenius-go/internal/domain"
	"github.com/yourusername/clipgenius-go/pkg/logger"
)

// RouterDeps holds what the local API needs. History and Events may be nil
// and LogsDir empty when those stores are disabled.
type RouterDeps struct {
	Downloads *app.DownloadManager
	Links     domain.LinkSource
	History   domain.HistoryRepository
	LogsDir   string
	Logger    *zap.Logger
	Events    *logger.MultiLogger
}

// SetupRouter sets up the read-only HTTP API
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log, deps.Events))
	router.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler(deps.History != nil, deps.LogsDir != "")
	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		urlHandler := handlers.NewURLHandler(deps.Links)
		v1.POST("/validate", urlHandler.Validate)
		v1.POST("/urls/parse", urlHandler.ParseURLs)
		v1.POST("/links", urlHandler.ExtractLinks)

		inspectHandler := handlers.NewInspectHandler(deps.Downloads, log)
		v1.POST("/inspect", inspectHandler.Inspect)
		v1.POST("/filename", inspectHandler.SuggestFilename)

		historyHandler := handlers.NewHistoryHandler(deps.History, log)
		history := v1.Group("/history")
		{
			history.GET("", historyHandler.List)
			history.GET("/stats", historyHandler.Stats)
			history.GET("/:id", historyHandler.Get)
		}

		logHandler := handlers.NewLogHandler(deps.LogsDir)
		streamHandler := handlers.NewLogStreamHandler(deps.LogsDir, log)
		logs := v1.Group("/logs")
		{
			logs.GET("/categories", logHandler.GetCategories)
			logs.GET("/:category", logHandler.GetLogs)
			logs.GET("/:category/search", logHandler.SearchLogs)
			logs.GET("/:category/export", logHandler.ExportLogs)
			logs.GET("/:category/ws", streamHandler.HandleWebSocket)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "not found"})
	})

	return router
}
