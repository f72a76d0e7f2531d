package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nileshnishad/laboursampark-backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	userHandler    *handlers.UserHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", d.userHandler.Register)
			users.POST("/login", d.userHandler.Login)
			users.POST("/request-otp", d.userHandler.RequestOTP)

			profile := users.Group("")
			profile.Use(d.authMiddleware)
			{
				profile.GET("/profile", d.userHandler.GetProfile)
				profile.POST("/profile", d.userHandler.GetProfile)
				profile.PUT("/profile", d.userHandler.UpdateProfile)
				profile.PATCH("/profile", d.userHandler.UpdateProfile)
				profile.POST("/change-password", d.userHandler.ChangePassword)
			}
		}
	}

	// Legacy aliases kept for older clients
	auth := r.Group("/auth")
	{
		auth.POST("/register", d.userHandler.Register)
		auth.POST("/login", d.userHandler.Login)
		auth.POST("/request-otp", d.userHandler.RequestOTP)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
