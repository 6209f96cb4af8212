package main

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"smartroute/internal/middleware"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	auth := app.authMiddleware()

	// Health check endpoint
	app.router.GET("/health", app.handleHealth)

	// Authentication. Register is limited hard to keep signup spam out,
	// login a bit looser against brute force.
	app.router.POST("/api/register", middleware.RateLimit(5, time.Hour), app.handleRegister)
	app.router.POST("/api/login", middleware.RateLimit(10, time.Minute), app.handleLogin)

	// Account endpoints
	app.router.GET("/api/me", auth, app.handleCurrentUser)
	app.router.GET("/api/me/history", auth, app.handleLoginHistory)
	app.router.GET("/api/me/usage", auth, app.handleUsage)
	app.router.GET("/api/tiers", app.handleListTiers)

	// Admin endpoints
	app.router.POST("/api/create-first-admin", middleware.RateLimit(5, time.Hour), app.handleCreateFirstAdmin)
	app.router.POST("/api/admin/users/:username/tier", auth, app.handleUpgradeTier)

	// Routing endpoints
	app.router.POST("/rota", auth,
		middleware.RateLimit(30, time.Minute),
		middleware.TierGate(app.tierManager, app.users, app.logger),
		app.handleRoute)
	app.router.POST("/geocoding", auth, middleware.RateLimit(20, time.Minute), app.handleGeocode)

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(301, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
