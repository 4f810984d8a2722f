package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Coverage Monitor API
// @version 1.0
// @description API for monitoring connector data coverage and backend sync progress
// @contact.name API Support
// @contact.url http://github.com/Kamar-Folarin
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// SetupRouter configures the API routes, allowing any origin when allowedOrigins is empty
func SetupRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger), corsMiddleware(allowedOrigins))

	r.GET("/healthz", h.Health)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		coverage := v1.Group("/coverage")
		{
			coverage.GET("", h.GetCoverage)
			coverage.GET("/daily", h.GetDailyCoverage)
		}

		v1.GET("/connectors", h.ListConnectors)

		sync := v1.Group("/sync")
		{
			sync.GET("/status", h.GetSyncStatus)
			sync.POST("/revalidate", h.Revalidate)
			sync.GET("/ticks", h.ListTicks)
		}

		v1.GET("/repositories", h.ListRepositories)

		index := v1.Group("/index/repositories")
		{
			index.GET("", h.ListIndexRepositories)
			index.POST("/:owner/:repo/details", h.RequestDetails)
			index.GET("/:owner/:repo/details", h.GetDetails)
			index.DELETE("/:owner/:repo/details", h.ClearDetails)
		}
	}

	return r
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("Handled request")
	}
}
