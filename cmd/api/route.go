package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"smartroute/internal/middleware"
	"smartroute/internal/optimizer"
	"smartroute/internal/types"
)

// RouteRequest carries the routing payload. Coordinates are [lon, lat]
// pairs, origin first.
type RouteRequest struct {
	Coordinates [][]float64        `json:"coordinates"`
	Constraints *types.Constraints `json:"constraints,omitempty"`
}

// handleRoute godoc
// @Summary Calculate a route
// @Description Premium traffic/weather-optimized route when the plan allows it, basic routing otherwise. Returns a GeoJSON FeatureCollection.
// @Tags routing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RouteRequest true "Route request"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /rota [post]
func (app *App) handleRoute(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Payload JSON inválido ou ausente"})
		return
	}

	origin, destination, ok := parseRoutePair(c, req.Coordinates)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	canUsePremium := user != nil && app.tierManager.ConfigFor(user).Features.TrafficOptimization

	usePremium := req.Constraints != nil && app.optimizer != nil && canUsePremium

	if usePremium {
		app.logger.Info("premium routing mode", "username", user.Username)
		result, err := app.optimizer.OptimizeRoute(c.Request.Context(), origin, destination, *req.Constraints)
		if err == nil && len(result.Winner.Geometry) >= 2 {
			c.JSON(http.StatusOK, buildOptimizedGeoJSON(result, origin, destination, req.Constraints))
			return
		}
		// The optimizer degrades silently: the caller still gets a route.
		app.logger.Warn("optimization failed, falling back to basic routing", "error", err)
	}

	app.logger.Info("basic routing mode")
	geojsonData, err := app.orsClient.GetRouteGeoJSON(c.Request.Context(), req.Coordinates)
	if err != nil {
		app.logger.Error("basic routing failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"erro": "Erro de API ORS"})
		return
	}

	annotateFallback(geojsonData)
	c.JSON(http.StatusOK, geojsonData)
}

// parseRoutePair validates the two-coordinate payload and answers the
// request itself on failure.
func parseRoutePair(c *gin.Context, coordinates [][]float64) (origin, destination types.Coordinate, ok bool) {
	if len(coordinates) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Coordenadas ausentes"})
		return origin, destination, false
	}
	for _, pair := range coordinates[:2] {
		if len(pair) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"erro": "Coordenadas inválidas"})
			return origin, destination, false
		}
	}

	origin = types.Coordinate{Latitude: coordinates[0][1], Longitude: coordinates[0][0]}
	destination = types.Coordinate{Latitude: coordinates[1][1], Longitude: coordinates[1][0]}

	if err := origin.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Coordenadas de origem inválidas"})
		return origin, destination, false
	}
	if err := destination.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Coordenadas de destino inválidas"})
		return origin, destination, false
	}
	return origin, destination, true
}

// buildOptimizedGeoJSON assembles the premium response: one route reference
// feature carrying the optimization metadata, one feature per colored
// traffic segment, and the route's bounding box.
func buildOptimizedGeoJSON(result *optimizer.OptimizedRoute, origin, destination types.Coordinate, constraints *types.Constraints) *geojson.FeatureCollection {
	winner := result.Winner

	line := make(orb.LineString, 0, len(winner.Geometry))
	for _, p := range winner.Geometry {
		line = append(line, orb.Point{p.Longitude, p.Latitude})
	}

	distanceM := winner.DistanceKm * 1000
	durationS := result.DurationAdjustedMin * 60

	segmentFeatures := make([]*geojson.Feature, 0, len(result.Segments))
	for _, seg := range result.Segments {
		f := geojson.NewFeature(orb.LineString{
			{seg.Start.Longitude, seg.Start.Latitude},
			{seg.End.Longitude, seg.End.Latitude},
		})
		f.Properties = geojson.Properties{
			"feature_type": "traffic_segment",
			"color":        seg.Color,
			"status":       seg.Status,
			"speed_ratio":  seg.SpeedRatio,
		}
		segmentFeatures = append(segmentFeatures, f)
	}

	// With colored segments the route line itself is transparent, the
	// segments carry the color.
	routeColor := optimizer.TrafficColor(winner.TrafficFactor)
	if len(segmentFeatures) > 0 {
		routeColor = "rgba(0,0,0,0)"
	}

	route := geojson.NewFeature(line)
	route.Properties = geojson.Properties{
		"feature_type": "route_reference",
		"summary": map[string]any{
			"distance": distanceM,
			"duration": durationS,
		},
		"segments": []map[string]any{{
			"distance": distanceM,
			"duration": durationS,
			"steps":    []any{},
		}},
		"optimization": map[string]any{
			"enabled":               true,
			"source":                "tomtom",
			"reasoning":             result.Reasoning,
			"weather":               winner.WeatherDescription,
			"traffic_factor":        winner.TrafficFactor,
			"weather_factor":        winner.WeatherFactor,
			"duration_base_min":     winner.DurationBaseMin,
			"duration_adjusted_min": result.DurationAdjustedMin,
			"constraints_applied":   constraints,
			"route_color":           routeColor,
			"traffic_level":         optimizer.TrafficLevel(winner.TrafficFactor),
		},
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(route)
	for _, f := range segmentFeatures {
		fc.Append(f)
	}
	fc.BBox = geojson.NewBBox(line.Bound())
	fc.ExtraMembers = geojson.Properties{
		"metadata": map[string]any{
			"attribution": "TomTom",
			"service":     "routing",
			"query": map[string]any{
				"coordinates": [][]float64{
					{origin.Longitude, origin.Latitude},
					{destination.Longitude, destination.Latitude},
				},
				"profile": "driving-car",
				"format":  "geojson",
			},
		},
	}
	return fc
}

// annotateFallback marks the basic ORS response so clients can tell the
// route was not optimized.
func annotateFallback(geojsonData map[string]any) {
	features, ok := geojsonData["features"].([]any)
	if !ok || len(features) == 0 {
		return
	}
	feature, ok := features[0].(map[string]any)
	if !ok {
		return
	}
	props, ok := feature["properties"].(map[string]any)
	if !ok {
		props = map[string]any{}
		feature["properties"] = props
	}
	props["optimization"] = map[string]any{
		"enabled": false,
		"source":  "ors_fallback",
	}
}
