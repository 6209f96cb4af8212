package optimizer

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"smartroute/internal/providers/groq"
	"smartroute/internal/types"
)

// scoreCandidates runs the model analysis and applies its penalty weights.
// Returns the selected candidate index, the reasoning text and whether the
// model's answer was used. Any model failure falls back to the preliminary
// score heuristic.
func (s *Service) scoreCandidates(ctx context.Context, constraints types.Constraints, candidates []Candidate) (int, string, bool) {
	if s.scoring != nil {
		analysis, err := s.scoring.AnalyzeRoutes(ctx, constraints, toScoringCandidates(candidates))
		if err == nil {
			applyWeights(candidates, analysis.Weights)
			idx := indexByID(candidates, analysis.SelectedCandidate)
			s.logger.Info("scoring model selected route",
				"route_id", analysis.SelectedCandidate, "reasoning", analysis.Reasoning)
			return idx, analysis.Reasoning, true
		}
		s.logger.Warn("scoring model failed, using preliminary score fallback", "error", err)
	}

	idx := lowestPreliminary(candidates)
	return idx, explainChoice(candidates[idx], constraints), false
}

// toScoringCandidates strips candidates down to the features the model sees.
func toScoringCandidates(candidates []Candidate) []groq.ScoringCandidate {
	out := make([]groq.ScoringCandidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, groq.ScoringCandidate{
			ID:                 c.ID,
			DistanceKm:         c.DistanceKm,
			DurationBaseMin:    c.DurationBaseMin,
			TrafficFactor:      c.TrafficFactor,
			WeatherFactor:      c.WeatherFactor,
			TollCount:          c.TollCount,
			UnpavedMeters:      c.UnpavedMeters,
			WeatherDescription: c.WeatherDescription,
		})
	}
	return out
}

// applyWeights turns the model's per-tag penalty weights into final scores.
func applyWeights(candidates []Candidate, weights map[string]float64) {
	for i := range candidates {
		penalties := weights["toll"] * float64(candidates[i].TollCount)
		penalties += weights["unpaved"] * (candidates[i].UnpavedMeters / 1000)
		candidates[i].ScoreFinal = candidates[i].ScorePreliminary + penalties
	}
}

// indexByID resolves the model's chosen id. An id outside the candidate set
// degrades to the first candidate.
func indexByID(candidates []Candidate, id int) int {
	idx := slices.IndexFunc(candidates, func(c Candidate) bool { return c.ID == id })
	if idx < 0 {
		return 0
	}
	return idx
}

// lowestPreliminary returns the index of the candidate with the smallest
// preliminary score. Ties keep the earlier (lower id) candidate.
func lowestPreliminary(candidates []Candidate) int {
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].ScorePreliminary < candidates[best].ScorePreliminary {
			best = i
		}
	}
	return best
}

// explainChoice builds the fallback justification from the user constraints.
func explainChoice(selected Candidate, constraints types.Constraints) string {
	durationMin := selected.DurationBaseMin
	if selected.ScoreFinal > 0 {
		durationMin = selected.ScoreFinal / 60
	}

	var reasons []string
	if slices.Contains(constraints.Prefer, "fastest") {
		reasons = append(reasons, fmt.Sprintf("rota mais rápida (%.0f min)", durationMin))
	}
	if slices.Contains(constraints.Prefer, "shortest") {
		reasons = append(reasons, fmt.Sprintf("rota mais curta (%.1f km)", selected.DistanceKm))
	}
	if slices.Contains(constraints.Avoid, "toll") && selected.TollCount == 0 {
		reasons = append(reasons, "evita pedágios")
	}
	if slices.Contains(constraints.Avoid, "unpaved") && selected.UnpavedMeters == 0 {
		reasons = append(reasons, "evita estradas de terra")
	}
	if slices.Contains(constraints.Avoid, "highway") {
		reasons = append(reasons, "evita rodovias")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "melhor equilíbrio entre tempo e distância")
	}
	return "Rota selecionada: " + strings.Join(reasons, ", ") + "."
}
