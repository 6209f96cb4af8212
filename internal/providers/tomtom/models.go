package tomtom

import "smartroute/internal/types"

// RouteAlternative is one provider-returned route with its traffic summary
// and normalized geometry. Immutable once returned.
type RouteAlternative struct {
	DistanceMeters      float64            `json:"distance_meters"`
	TravelTimeSeconds   float64            `json:"travel_time_seconds"`
	TrafficDelaySeconds float64            `json:"traffic_delay_seconds"`
	TrafficLengthMeters float64            `json:"traffic_length_meters"`
	DepartureTime       string             `json:"departure_time"`
	ArrivalTime         string             `json:"arrival_time"`
	Geometry            []types.Coordinate `json:"geometry"`
}

// TrafficFlow is a point traffic snapshot from the Flow Segment Data API.
type TrafficFlow struct {
	CurrentSpeed       float64 `json:"current_speed"`
	FreeFlowSpeed      float64 `json:"free_flow_speed"`
	CurrentTravelTime  float64 `json:"current_travel_time"`
	FreeFlowTravelTime float64 `json:"free_flow_travel_time"`
	Confidence         float64 `json:"confidence"`
	RoadClosure        bool    `json:"road_closure"`
}

// Incident is a traffic incident inside a bounding box.
type Incident struct {
	Type         string  `json:"type"`
	Latitude     float64 `json:"lat"`
	Longitude    float64 `json:"lon"`
	Severity     string  `json:"severity"`
	Description  string  `json:"description"`
	DelaySeconds int     `json:"delay_seconds"`
}

// routingAPIResponse mirrors the calculateRoute JSON payload.
type routingAPIResponse struct {
	Routes []struct {
		Summary struct {
			LengthInMeters        float64 `json:"lengthInMeters"`
			TravelTimeInSeconds   float64 `json:"travelTimeInSeconds"`
			TrafficDelayInSeconds float64 `json:"trafficDelayInSeconds"`
			TrafficLengthInMeters float64 `json:"trafficLengthInMeters"`
			DepartureTime         string  `json:"departureTime"`
			ArrivalTime           string  `json:"arrivalTime"`
		} `json:"summary"`
		Legs []struct {
			Points []rawPoint `json:"points"`
		} `json:"legs"`
	} `json:"routes"`
}

// flowAPIResponse mirrors the flowSegmentData JSON payload.
type flowAPIResponse struct {
	FlowSegmentData struct {
		CurrentSpeed       float64 `json:"currentSpeed"`
		FreeFlowSpeed      float64 `json:"freeFlowSpeed"`
		CurrentTravelTime  float64 `json:"currentTravelTime"`
		FreeFlowTravelTime float64 `json:"freeFlowTravelTime"`
		Confidence         float64 `json:"confidence"`
		RoadClosure        bool    `json:"roadClosure"`
	} `json:"flowSegmentData"`
}

// incidentsAPIResponse mirrors the incidentDetails v5 JSON payload.
type incidentsAPIResponse struct {
	Incidents []struct {
		Geometry struct {
			Type        string      `json:"type"`
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			IconCategory     int `json:"iconCategory"`
			MagnitudeOfDelay int `json:"magnitudeOfDelay"`
			Events           []struct {
				Description string `json:"description"`
				Code        int    `json:"code"`
			} `json:"events"`
		} `json:"properties"`
	} `json:"incidents"`
}
