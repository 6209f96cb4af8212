package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartroute/internal/middleware"
	"smartroute/internal/tier"
)

// handleUsage godoc
// @Summary Usage statistics
// @Description Quota snapshot for the current user's plan
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} tier.UsageStats
// @Failure 404 {object} map[string]string
// @Router /api/me/usage [get]
func (app *App) handleUsage(c *gin.Context) {
	user, err := app.users.GetByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Usuário não encontrado"})
		return
	}

	c.JSON(http.StatusOK, app.tierManager.UsageStats(user))
}

// handleListTiers godoc
// @Summary Available plans
// @Description Every plan with its limits and features, for the pricing page
// @Tags account
// @Produce json
// @Success 200 {object} map[string]tier.Config
// @Router /api/tiers [get]
func (app *App) handleListTiers(c *gin.Context) {
	c.JSON(http.StatusOK, tier.AllConfigs())
}
