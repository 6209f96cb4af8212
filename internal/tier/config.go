package tier

// Features flags which optimization capabilities a plan includes.
type Features struct {
	TrafficOptimization bool `json:"traffic_optimization"`
	WeatherOptimization bool `json:"weather_optimization"`
	AIRecommendations   bool `json:"ai_recommendations"`
	AlternativeRoutes   bool `json:"alternative_routes"`
	TrafficIncidents    bool `json:"traffic_incidents"`
}

// Config describes one plan. Nil limits mean unlimited.
type Config struct {
	Name                string   `json:"name"`
	MaxRequestsPerMonth *int     `json:"max_requests_per_month"`
	MaxDistanceKm       *float64 `json:"max_distance_km"`
	Features            Features `json:"features"`
	Description         string   `json:"description"`
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

var allFeatures = Features{
	TrafficOptimization: true,
	WeatherOptimization: true,
	AIRecommendations:   true,
	AlternativeRoutes:   true,
	TrafficIncidents:    true,
}

// configs is the plan table. Unknown tiers degrade to free.
var configs = map[string]Config{
	"free": {
		Name:                "Free",
		MaxRequestsPerMonth: intPtr(5),
		MaxDistanceKm:       floatPtr(20),
		Features:            Features{},
		Description:         "Plano gratuito com limitações",
	},
	"pro": {
		Name:                "Pro",
		MaxRequestsPerMonth: intPtr(100),
		MaxDistanceKm:       floatPtr(200),
		Features:            allFeatures,
		Description:         "Plano profissional com otimizações avançadas",
	},
	"master": {
		Name:                "Master",
		MaxRequestsPerMonth: intPtr(500),
		Features:            allFeatures,
		Description:         "Plano master com uso extensivo",
	},
	"admin": {
		Name:        "Admin",
		Features:    allFeatures,
		Description: "Acesso administrativo sem limites",
	},
}

// hierarchy orders plans for upgrade suggestions.
var hierarchy = []string{"free", "pro", "master", "admin"}

// AllConfigs returns every plan keyed by tier id, for the pricing page.
func AllConfigs() map[string]Config {
	return configs
}

// IsValid reports whether the tier id names a known plan.
func IsValid(tier string) bool {
	_, ok := configs[tier]
	return ok
}
