package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// applyCORSMiddleware echoes the request origin and answers preflight
// requests directly.
func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

// registerHealthRoute exposes liveness endpoints and the API banner
func registerHealthRoute(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "LabourSampark API Running",
			"version": "1.0.0",
		})
	})

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   "laboursampark-backend",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
	r.GET("/health", health)
	r.GET("/api/health", health)
}
