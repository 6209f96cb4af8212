package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"smartroute/internal/types"
)

// API Docs: https://console.groq.com/docs/api-reference
const baseChatURL = "https://api.groq.com/openai/v1/chat/completions"

const systemPrompt = "Você é um assistente especializado em otimização de rotas. " +
	"Analise as rotas candidatas e retorne APENAS JSON válido, " +
	"sem markdown, sem explicações extras. " +
	"Use raciocínio numérico para sugerir pesos e escolher a melhor rota. " +
	"Justificativa deve ser em português brasileiro, máximo 80 palavras."

// Client talks to the Groq chat-completions API for route scoring.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *slog.Logger
}

// NewClient creates a Groq client. The key is required; an empty model
// falls back to llama-3.3-70b-versatile.
func NewClient(apiKey, model string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("groq api key is required")
	}
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseChatURL,
		apiKey:     apiKey,
		model:      model,
		logger:     logger.With("component", "groq-client"),
	}, nil
}

// AnalyzeRoutes asks the model for per-avoid-tag penalty weights, a chosen
// candidate and a justification. Any transport, parse or shape problem is
// returned as an error so the caller can run its deterministic fallback.
func (c *Client) AnalyzeRoutes(ctx context.Context, constraints types.Constraints, candidates []ScoringCandidate) (*Analysis, error) {
	prompt, err := buildPrompt(constraints, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		// Low temperature keeps the scoring close to deterministic
		Temperature: 0.3,
		MaxTokens:   500,
		TopP:        0.9,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
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

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, errors.New("response has no choices")
	}

	content := stripMarkdownFences(strings.TrimSpace(chatResp.Choices[0].Message.Content))
	c.logger.Debug("raw model output", "content", content)

	return ParseAnalysis(content)
}

// ParseAnalysis validates the model's JSON output: weights must be a
// mapping, selected_candidate an integer and reasoning a string; a missing
// key or wrong type is an error.
func ParseAnalysis(content string) (*Analysis, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	for _, key := range []string{"weights", "selected_candidate", "reasoning"} {
		value, ok := raw[key]
		if !ok {
			return nil, fmt.Errorf("response missing %q", key)
		}
		// json.Unmarshal accepts null into map/int/string without error.
		if bytes.Equal(value, []byte("null")) {
			return nil, fmt.Errorf("response has null %q", key)
		}
	}

	var result Analysis
	if err := json.Unmarshal(raw["weights"], &result.Weights); err != nil {
		return nil, fmt.Errorf("weights is not a mapping: %w", err)
	}
	if err := json.Unmarshal(raw["selected_candidate"], &result.SelectedCandidate); err != nil {
		return nil, fmt.Errorf("selected_candidate is not an integer: %w", err)
	}
	if err := json.Unmarshal(raw["reasoning"], &result.Reasoning); err != nil {
		return nil, fmt.Errorf("reasoning is not a string: %w", err)
	}

	return &result, nil
}

// stripMarkdownFences removes a leading/trailing ```json fence if the model
// wrapped its output despite the instructions.
func stripMarkdownFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func buildPrompt(constraints types.Constraints, candidates []ScoringCandidate) (string, error) {
	candidatesJSON, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return "", err
	}

	avoid := "Nenhuma"
	if len(constraints.Avoid) > 0 {
		avoid = strings.Join(constraints.Avoid, ", ")
	}
	prefer := "Nenhuma"
	if len(constraints.Prefer) > 0 {
		prefer = strings.Join(constraints.Prefer, ", ")
	}

	return fmt.Sprintf(`Analise estas rotas com base nas restrições do usuário:

**Restrições:**
- Evitar: %s
- Preferir: %s

**Candidatas:**
%s

**Tarefa:**
1. Para cada restrição "avoid", sugira um peso (penalidade em segundos). Exemplo: "toll": 600 (10 min de penalidade por pedágio).
2. Calcule um score final para cada candidata: base_time_seconds * traffic_factor * weather_factor + sum(penalidades).
3. Escolha a candidata com MENOR score final.
4. Explique brevemente (máx 80 palavras em português) POR QUE essa rota foi escolhida.

**Formato de Saída (JSON apenas):**
{
  "weights": {
    "toll": 600,
    "unpaved": 300
  },
  "selected_candidate": 1,
  "reasoning": "Rota 1 escolhida pois evita pedágios e tem menor tempo total ajustado."
}

NÃO inclua markdown, NÃO explique fora do JSON. Retorne APENAS o JSON.`, avoid, prefer, string(candidatesJSON)), nil
}
