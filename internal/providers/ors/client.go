package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// API Docs: https://openrouteservice.org/dev/#/api-docs
const (
	baseDirectionsURL = "https://api.openrouteservice.org/v2/directions/driving-car"
	baseGeocodeURL    = "https://api.openrouteservice.org/geocode/search"
)

// ErrAddressNotFound is returned when the geocoder has no result for an
// address.
var ErrAddressNotFound = errors.New("address not found")

// Client talks to the OpenRouteService directions and geocoding APIs. It
// serves the basic, non-optimized routing path.
type Client struct {
	httpClient    *http.Client
	directionsURL string
	geocodeURL    string
	apiKey        string
	useBearer     bool
}

// NewClient creates an ORS client. The key is required.
func NewClient(apiKey string, useBearer bool) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("ors api key is required")
	}
	return &Client{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		directionsURL: baseDirectionsURL,
		geocodeURL:    baseGeocodeURL,
		apiKey:        apiKey,
		useBearer:     useBearer,
	}, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.useBearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	} else {
		req.Header.Set("Authorization", c.apiKey)
	}
}

// GetRouteGeoJSON fetches a driving route as a GeoJSON FeatureCollection.
// Coordinates are [lon, lat] pairs, as ORS expects.
func (c *Client) GetRouteGeoJSON(ctx context.Context, coordinates [][]float64) (map[string]any, error) {
	payload := map[string]any{
		"coordinates":  coordinates,
		"units":        "m",
		"instructions": false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.directionsURL+"/geojson", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var geojson map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&geojson); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return geojson, nil
}

// geocodeAPIResponse mirrors the subset of the Pelias payload we read.
type geocodeAPIResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// GeocodeSearch resolves an address to (longitude, latitude). The search is
// bounded to Brazil, matching the product's locale.
func (c *Client) GeocodeSearch(ctx context.Context, address string) (lon, lat float64, err error) {
	u, err := url.Parse(c.geocodeURL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("text", address)
	q.Set("boundary.country", "BRA")
	q.Set("size", strconv.Itoa(1))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, 0, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp geocodeAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return 0, 0, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Features) == 0 || len(apiResp.Features[0].Geometry.Coordinates) < 2 {
		return 0, 0, ErrAddressNotFound
	}

	coords := apiResp.Features[0].Geometry.Coordinates
	return coords[0], coords[1], nil
}
