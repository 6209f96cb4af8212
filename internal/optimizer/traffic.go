package optimizer

import (
	"smartroute/internal/providers/tomtom"
)

// flowFactor converts a single flow measurement into a delay multiplier.
// A nil flow (provider failure) is neutral.
func flowFactor(flow *tomtom.TrafficFlow) float64 {
	if flow == nil {
		return 1.0
	}
	if flow.RoadClosure {
		return 3.0
	}
	if flow.FreeFlowSpeed == 0 || flow.CurrentSpeed == 0 {
		return 1.5
	}

	ratio := flow.CurrentSpeed / flow.FreeFlowSpeed
	switch {
	case ratio >= 0.9:
		return 1.0
	case ratio >= 0.7:
		return 1.2
	case ratio >= 0.5:
		return 1.5
	case ratio >= 0.3:
		return 2.0
	default:
		return 2.5
	}
}

// routeTrafficFactor averages per-sample factors across a route.
func routeTrafficFactor(flows []*tomtom.TrafficFlow) float64 {
	if len(flows) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, flow := range flows {
		sum += flowFactor(flow)
	}
	return sum / float64(len(flows))
}

// summaryTrafficFactor derives a factor from the routing summary's reported
// delay when no geometry is available to sample.
func summaryTrafficFactor(delaySeconds, baseSeconds float64) float64 {
	if baseSeconds <= 0 {
		return 1.0
	}
	return 1.0 + delaySeconds/baseSeconds
}
