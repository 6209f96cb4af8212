package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"smartroute/internal/middleware"
	"smartroute/internal/repository"
)

// CredentialsRequest carries register/login payloads
type CredentialsRequest struct {
	Username string `json:"username" example:"maria"`
	Password string `json:"password" example:"senha-segura"`
}

// TokenResponse carries the login result
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// handleRegister godoc
// @Summary Register a new user
// @Description Create a free-tier account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/register [post]
func (app *App) handleRegister(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados ausentes"})
		return
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Username deve ter pelo menos 3 caracteres"})
		return
	}
	if len(username) > 80 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Username muito longo (máximo 80 caracteres)"})
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Senha deve ter pelo menos 8 caracteres"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		app.logger.Error("failed to hash password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar usuário"})
		return
	}

	if _, err := app.users.Create(c.Request.Context(), username, hash, "free"); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"erro": "Usuário já existe"})
			return
		}
		app.logger.Error("failed to create user", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao criar usuário"})
		return
	}

	app.logger.Info("user registered", "username", username)
	c.JSON(http.StatusCreated, gin.H{"mensagem": "Usuário criado com sucesso"})
}

// handleLogin godoc
// @Summary Authenticate a user
// @Description Validate credentials and issue a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} map[string]string
// @Router /api/login [post]
func (app *App) handleLogin(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Dados ausentes"})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Username e senha são obrigatórios"})
		return
	}

	user, err := app.users.GetByUsername(c.Request.Context(), username)
	// Generic message so the response never reveals whether the user exists.
	if err != nil || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		app.logger.Warn("login attempt failed", "username", username)
		c.JSON(http.StatusUnauthorized, gin.H{"erro": "Credenciais inválidas"})
		return
	}

	token, err := middleware.IssueToken(app.cfg.Auth.JWTSecret, username, app.cfg.Auth.TokenTTL)
	if err != nil {
		app.logger.Error("failed to issue token", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao gerar token"})
		return
	}

	// History is best effort, the login still succeeds without it.
	userAgent := c.GetHeader("User-Agent")
	if len(userAgent) > 200 {
		userAgent = userAgent[:200]
	}
	if err := app.users.RecordLogin(c.Request.Context(), user.ID, token, c.ClientIP(), userAgent); err != nil {
		app.logger.Error("failed to record login history", "username", username, "error", err)
	}

	app.logger.Info("login successful", "username", username, "ip", c.ClientIP())
	c.JSON(http.StatusOK, TokenResponse{AccessToken: token})
}

// handleCurrentUser godoc
// @Summary Current user info
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/me [get]
func (app *App) handleCurrentUser(c *gin.Context) {
	user, err := app.users.GetByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Usuário não encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":   user.Username,
		"tier":       user.Tier,
		"created_at": user.CreatedAt.Format(time.RFC3339),
	})
}

// handleLoginHistory godoc
// @Summary Recent logins
// @Description Last 10 authentication events for the current user
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/me/history [get]
func (app *App) handleLoginHistory(c *gin.Context) {
	user, err := app.users.GetByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Usuário não encontrado"})
		return
	}

	history, err := app.users.ListLoginHistory(c.Request.Context(), user.ID, 10)
	if err != nil {
		app.logger.Error("failed to list login history", "username", user.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao buscar histórico"})
		return
	}

	logins := make([]gin.H, 0, len(history))
	for _, h := range history {
		agent := h.UserAgent
		if len(agent) > 50 {
			agent = agent[:50] + "..."
		}
		logins = append(logins, gin.H{
			"login_at":   h.LoginAt.Format(time.RFC3339),
			"ip_address": h.IPAddress,
			"user_agent": agent,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"username":      user.Username,
		"recent_logins": logins,
	})
}
