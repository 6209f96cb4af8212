package tomtom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"smartroute/internal/types"
)

// API Docs: https://developer.tomtom.com/traffic-api/documentation
const baseURL = "https://api.tomtom.com"

// Client talks to the TomTom Routing, Traffic Flow and Traffic Incidents
// APIs. Every method treats a non-2xx response or decode failure as an
// error; callers degrade to neutral values.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	useBearer  bool
	logger     *slog.Logger
}

// NewClient creates a TomTom client. The key is required.
func NewClient(apiKey string, useBearer bool, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("tomtom api key is required")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		useBearer:  useBearer,
		logger:     logger.With("component", "tomtom-client"),
	}, nil
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.useBearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// withKey appends the API key query parameter unless bearer auth is in use.
func (c *Client) withKey(q url.Values) url.Values {
	if !c.useBearer {
		q.Set("key", c.apiKey)
	}
	return q
}

// GetRouteWithTraffic fetches up to `alternatives` route alternatives
// between origin and destination, with traffic summaries and normalized
// geometry. An empty slice means the provider had no route.
func (c *Client) GetRouteWithTraffic(ctx context.Context, origin, destination types.Coordinate, alternatives int) ([]RouteAlternative, error) {
	if alternatives > 5 {
		alternatives = 5
	}

	u, err := url.Parse(fmt.Sprintf(
		"%s/routing/1/calculateRoute/%f,%f:%f,%f/json",
		c.baseURL,
		origin.Latitude, origin.Longitude,
		destination.Latitude, destination.Longitude,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("traffic", "true")
	q.Set("routeType", "fastest")
	q.Set("travelMode", "car")
	q.Set("maxAlternatives", strconv.Itoa(alternatives))
	q.Set("computeBestOrder", "false")
	u.RawQuery = c.withKey(q).Encode()

	var apiResp routingAPIResponse
	if err := c.get(ctx, u.String(), &apiResp); err != nil {
		return nil, fmt.Errorf("routing request failed: %w", err)
	}

	routes := make([]RouteAlternative, 0, len(apiResp.Routes))
	for _, r := range apiResp.Routes {
		var geometry []types.Coordinate
		if len(r.Legs) > 0 {
			geometry = normalizeGeometry(r.Legs[0].Points)
		}
		routes = append(routes, RouteAlternative{
			DistanceMeters:      r.Summary.LengthInMeters,
			TravelTimeSeconds:   r.Summary.TravelTimeInSeconds,
			TrafficDelaySeconds: r.Summary.TrafficDelayInSeconds,
			TrafficLengthMeters: r.Summary.TrafficLengthInMeters,
			DepartureTime:       r.Summary.DepartureTime,
			ArrivalTime:         r.Summary.ArrivalTime,
			Geometry:            geometry,
		})
	}

	c.logger.Debug("routing response received", "routes", len(routes))
	return routes, nil
}

// GetTrafficFlow fetches the traffic flow snapshot for a single point.
func (c *Client) GetTrafficFlow(ctx context.Context, latitude, longitude float64) (*TrafficFlow, error) {
	u, err := url.Parse(c.baseURL + "/traffic/services/4/flowSegmentData/absolute/10/json")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("point", fmt.Sprintf("%f,%f", latitude, longitude))
	q.Set("unit", "KMPH")
	u.RawQuery = c.withKey(q).Encode()

	var apiResp flowAPIResponse
	if err := c.get(ctx, u.String(), &apiResp); err != nil {
		return nil, fmt.Errorf("traffic flow request failed: %w", err)
	}

	d := apiResp.FlowSegmentData
	return &TrafficFlow{
		CurrentSpeed:       d.CurrentSpeed,
		FreeFlowSpeed:      d.FreeFlowSpeed,
		CurrentTravelTime:  d.CurrentTravelTime,
		FreeFlowTravelTime: d.FreeFlowTravelTime,
		Confidence:         d.Confidence,
		RoadClosure:        d.RoadClosure,
	}, nil
}

// incidentTypes maps the iconCategory codes documented for the Incidents
// API v5 to readable names.
var incidentTypes = map[int]string{
	0:  "UNKNOWN",
	1:  "ACCIDENT",
	2:  "FOG",
	3:  "DANGEROUS_CONDITIONS",
	4:  "RAIN",
	5:  "ICE",
	6:  "JAM",
	7:  "LANE_CLOSED",
	8:  "ROAD_CLOSED",
	9:  "ROAD_WORKS",
	10: "WIND",
	11: "FLOODING",
	14: "BROKEN_DOWN_VEHICLE",
}

// GetTrafficIncidents fetches current incidents inside the bounding box
// (minLat, minLon, maxLat, maxLon). A failed or unparsable lookup returns
// an empty list with the error.
func (c *Client) GetTrafficIncidents(ctx context.Context, minLat, minLon, maxLat, maxLon float64) ([]Incident, error) {
	u, err := url.Parse(c.baseURL + "/traffic/services/5/incidentDetails")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("bbox", fmt.Sprintf("%f,%f,%f,%f", minLon, minLat, maxLon, maxLat))
	q.Set("fields", "{incidents{type,geometry{type,coordinates},properties{iconCategory,magnitudeOfDelay,events{description,code,iconCategory}}}}")
	q.Set("language", "pt-BR")
	q.Set("categoryFilter", "0,1,2,3,4,5,6,7,8,9,10,11,14")
	q.Set("timeValidityFilter", "present")
	u.RawQuery = c.withKey(q).Encode()

	var apiResp incidentsAPIResponse
	if err := c.get(ctx, u.String(), &apiResp); err != nil {
		return nil, fmt.Errorf("incidents request failed: %w", err)
	}

	incidents := make([]Incident, 0, len(apiResp.Incidents))
	for _, in := range apiResp.Incidents {
		if len(in.Geometry.Coordinates) == 0 || len(in.Geometry.Coordinates[0]) < 2 {
			continue
		}
		coords := in.Geometry.Coordinates[0]

		incidentType, ok := incidentTypes[in.Properties.IconCategory]
		if !ok {
			incidentType = "OTHER"
		}

		var severity string
		switch in.Properties.MagnitudeOfDelay {
		case 0:
			severity = "LOW"
		case 1:
			severity = "MODERATE"
		case 2:
			severity = "HIGH"
		default:
			severity = "CRITICAL"
		}

		description := "Incidente de trânsito"
		if len(in.Properties.Events) > 0 && in.Properties.Events[0].Description != "" {
			description = in.Properties.Events[0].Description
		}

		incidents = append(incidents, Incident{
			Type:        incidentType,
			Latitude:    coords[1],
			Longitude:   coords[0],
			Severity:    severity,
			Description: description,
			// Rough estimate from delay magnitude: 0=0s, 1=5min, 2=10min
			DelaySeconds: in.Properties.MagnitudeOfDelay * 300,
		})
	}

	c.logger.Debug("incidents response received", "incidents", len(incidents))
	return incidents, nil
}
