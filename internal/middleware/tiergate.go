package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"smartroute/internal/repository"
	"smartroute/internal/tier"
	"smartroute/internal/types"
)

// userKey is the gin context key holding the loaded account.
const userKey = "user"

// routeCoordinates is the subset of the route payload the gate needs.
type routeCoordinates struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// TierGate loads the authenticated account, validates its quota against the
// requested route and, when the handler answered 2xx, counts the request.
// Must run after JWTAuth.
func TierGate(manager *tier.Manager, store *repository.UserStore, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := store.GetByUsername(c.Request.Context(), Username(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"erro": "Usuário não encontrado"})
			return
		}

		// Bind with the caching reader so the handler can rebind the body.
		var req routeCoordinates
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil || len(req.Coordinates) < 2 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"erro": "Coordenadas ausentes"})
			return
		}
		if len(req.Coordinates[0]) < 2 || len(req.Coordinates[1]) < 2 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"erro": "Coordenadas inválidas"})
			return
		}

		// Payload carries [lon, lat] pairs.
		origin := types.Coordinate{Latitude: req.Coordinates[0][1], Longitude: req.Coordinates[0][0]}
		destination := types.Coordinate{Latitude: req.Coordinates[1][1], Longitude: req.Coordinates[1][0]}

		allowed, msg, stats := manager.CheckCanMakeRequest(c.Request.Context(), user, origin, destination)
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"erro":             msg,
				"usage":            stats,
				"upgrade_required": true,
			})
			return
		}

		c.Set(userKey, user)
		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			if err := manager.IncrementUsage(c.Request.Context(), user); err != nil {
				logger.Error("failed to count served request", "username", user.Username, "error", err)
			}
		}
	}
}

// CurrentUser reads the account loaded by TierGate.
func CurrentUser(c *gin.Context) *repository.User {
	if u, ok := c.Get(userKey); ok {
		if user, ok := u.(*repository.User); ok {
			return user
		}
	}
	return nil
}
