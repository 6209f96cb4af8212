package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"smartroute/internal/middleware"
	"smartroute/internal/providers/ors"
)

// GeocodeRequest carries the address to resolve
type GeocodeRequest struct {
	Address string `json:"address" example:"Avenida Paulista, São Paulo"`
}

// GeocodeResponse carries the resolved coordinates
type GeocodeResponse struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// handleGeocode godoc
// @Summary Geocode an address
// @Description Resolve a Brazilian address to coordinates
// @Tags routing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GeocodeRequest true "Address"
// @Success 200 {object} GeocodeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /geocoding [post]
func (app *App) handleGeocode(c *gin.Context) {
	var req GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Payload JSON inválido ou ausente"})
		return
	}

	address := strings.TrimSpace(req.Address)
	if len(address) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Endereço deve ter pelo menos 3 caracteres"})
		return
	}
	if len(address) > 500 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Endereço muito longo (máximo 500 caracteres)"})
		return
	}

	app.logger.Info("geocoding address", "username", middleware.Username(c), "address", address)

	lon, lat, err := app.orsClient.GeocodeSearch(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, ors.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"erro": "Endereço não encontrado ou inválido"})
			return
		}
		app.logger.Error("geocoding failed", "address", address, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"erro": "Erro de API ORS Geocoding"})
		return
	}

	c.JSON(http.StatusOK, GeocodeResponse{Lon: lon, Lat: lat})
}
