package api

import (
	"net/http"

	"yasno-outages/internal/api/handlers"
	"yasno-outages/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the middleware and routes around h.
func NewRouter(h *handlers.OutageHandler) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/status", h.GetStatus)
		api.GET("/event", h.GetEvent)
		api.GET("/events", h.ListEvents)
		api.GET("/refresh", h.GetRefreshStatus)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return router
}
