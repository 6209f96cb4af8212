//go:build integration

package tomtom

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"smartroute/internal/types"
)

func integrationClient(t *testing.T) *Client {
	key := os.Getenv("SMARTROUTE_PROVIDERS_TOMTOMKEY")
	if key == "" {
		t.Skip("SMARTROUTE_PROVIDERS_TOMTOMKEY not set")
	}
	client, err := NewClient(key, false, slog.Default())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestClient_GetRouteWithTraffic_Integration(t *testing.T) {
	client := integrationClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// São Paulo downtown to Paulista Avenue
	origin := types.Coordinate{Latitude: -23.5505, Longitude: -46.6333}
	destination := types.Coordinate{Latitude: -23.5629, Longitude: -46.6544}

	t.Logf("Making API call to TomTom Routing API...")

	routes, err := client.GetRouteWithTraffic(ctx, origin, destination, 2)
	if err != nil {
		t.Fatalf("Failed to get routes: %v", err)
	}

	rawJSON, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	t.Logf("Routes:\n%s", string(rawJSON))

	if len(routes) == 0 {
		t.Fatal("expected at least one route")
	}
	if routes[0].DistanceMeters < 1000 || routes[0].DistanceMeters > 20000 {
		t.Errorf("Distance seems unreasonable: %v m", routes[0].DistanceMeters)
	}
	if len(routes[0].Geometry) < 2 {
		t.Errorf("Route has no usable geometry: %d points", len(routes[0].Geometry))
	}

	t.Log("✓ API call successful, response structure valid")
}

func TestClient_GetTrafficFlow_Integration(t *testing.T) {
	client := integrationClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	flow, err := client.GetTrafficFlow(ctx, -23.5505, -46.6333)
	if err != nil {
		t.Fatalf("Failed to get traffic flow: %v", err)
	}

	t.Logf("Flow: current=%v free=%v closure=%v", flow.CurrentSpeed, flow.FreeFlowSpeed, flow.RoadClosure)

	if flow.FreeFlowSpeed <= 0 {
		t.Errorf("FreeFlowSpeed seems unreasonable: %v", flow.FreeFlowSpeed)
	}
}
