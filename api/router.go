// Package api exposes the plan-check pipeline over HTTP, the backend
// for the planners' dashboard. Plans are uploaded as CSV and results
// returned as JSON, or as a repaired CSV table on request.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/transitlab/busplan/app"
	"github.com/transitlab/busplan/config"
	"github.com/transitlab/busplan/infra/logger"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg *config.Config, pipeline *app.Pipeline, log logger.Logger) *gin.Engine {
	if cfg.Server.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORS(cfg.Server.AllowedOrigins))
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	h := newHandler(cfg, pipeline, log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/check", h.check)
		v1.POST("/repair", h.repair)
	}
	return router
}
