package main

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"smartroute/internal/middleware"
	"smartroute/internal/repository"
)

// TierChangeRequest carries the new plan for a user
type TierChangeRequest struct {
	Tier string `json:"tier" example:"pro"`
}

// AdminSetupRequest carries the one-time first-admin bootstrap payload
type AdminSetupRequest struct {
	SecretCode string `json:"secret_code"`
	Username   string `json:"username" example:"admin"`
	Password   string `json:"password"`
}

// handleCreateFirstAdmin godoc
// @Summary Bootstrap the first admin
// @Description One-time setup: creates the first admin account. Requires the configured setup code and only works while no admin exists.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminSetupRequest true "Setup payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/create-first-admin [post]
func (app *App) handleCreateFirstAdmin(c *gin.Context) {
	setupCode := app.cfg.Auth.AdminSetupCode
	if setupCode == "" {
		c.JSON(http.StatusForbidden, gin.H{"erro": "Configuração de admin desabilitada"})
		return
	}

	var req AdminSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados ausentes"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.SecretCode), []byte(setupCode)) != 1 {
		c.JSON(http.StatusForbidden, gin.H{"erro": "Código secreto inválido"})
		return
	}

	hasAdmin, err := app.users.HasAdmin(c.Request.Context())
	if err != nil {
		app.logger.Error("failed to check for existing admin", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar admin"})
		return
	}
	if hasAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Admin já existe no sistema"})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = "admin"
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Senha deve ter pelo menos 8 caracteres"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		app.logger.Error("failed to hash admin password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar admin"})
		return
	}

	user, err := app.users.Create(c.Request.Context(), username, hash, "admin")
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"erro": "Usuário já existe"})
			return
		}
		app.logger.Error("failed to create admin", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar admin"})
		return
	}

	app.logger.Info("first admin created", "username", user.Username)
	c.JSON(http.StatusCreated, gin.H{
		"mensagem": "Admin criado com sucesso",
		"username": user.Username,
		"tier":     user.Tier,
	})
}

// handleUpgradeTier godoc
// @Summary Change a user's plan
// @Description Admin-only tier change, resets the user's monthly counter
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Target username"
// @Param request body TierChangeRequest true "New tier"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/users/{username}/tier [post]
func (app *App) handleUpgradeTier(c *gin.Context) {
	caller, err := app.users.GetByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Usuário não encontrado"})
		return
	}
	if caller.Tier != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"erro": "Acesso restrito a administradores"})
		return
	}

	var req TierChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Tier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Tier ausente"})
		return
	}

	target, err := app.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Usuário não encontrado"})
		return
	}

	if err := app.tierManager.UpgradeTier(c.Request.Context(), target, req.Tier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensagem": "Tier atualizado com sucesso",
		"username": target.Username,
		"tier":     target.Tier,
	})
}
