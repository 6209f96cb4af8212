package groq

import (
	"strings"
	"testing"
)

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *Analysis)
	}{
		{
			name:  "valid response",
			input: `{"weights": {"toll": 600, "unpaved": 300}, "selected_candidate": 2, "reasoning": "Rota 2 evita pedágios."}`,
			validate: func(t *testing.T, a *Analysis) {
				if a.SelectedCandidate != 2 {
					t.Errorf("SelectedCandidate = %d, want 2", a.SelectedCandidate)
				}
				if a.Weights["toll"] != 600 {
					t.Errorf("Weights[toll] = %f, want 600", a.Weights["toll"])
				}
				if a.Reasoning == "" {
					t.Error("Reasoning is empty")
				}
			},
		},
		{
			name:        "not JSON",
			input:       "the best route is route 1",
			wantErr:     true,
			errContains: "not valid JSON",
		},
		{
			name:        "missing reasoning",
			input:       `{"weights": {}, "selected_candidate": 1}`,
			wantErr:     true,
			errContains: `missing "reasoning"`,
		},
		{
			name:        "missing weights",
			input:       `{"selected_candidate": 1, "reasoning": "ok"}`,
			wantErr:     true,
			errContains: `missing "weights"`,
		},
		{
			name:        "all keys null",
			input:       `{"weights": null, "selected_candidate": null, "reasoning": null}`,
			wantErr:     true,
			errContains: `null "weights"`,
		},
		{
			name:        "null selected_candidate",
			input:       `{"weights": {}, "selected_candidate": null, "reasoning": "ok"}`,
			wantErr:     true,
			errContains: `null "selected_candidate"`,
		},
		{
			name:        "null reasoning",
			input:       `{"weights": {"toll": 600}, "selected_candidate": 1, "reasoning": null}`,
			wantErr:     true,
			errContains: `null "reasoning"`,
		},
		{
			name:        "weights is not a mapping",
			input:       `{"weights": [600], "selected_candidate": 1, "reasoning": "ok"}`,
			wantErr:     true,
			errContains: "weights is not a mapping",
		},
		{
			name:        "selected_candidate is not an integer",
			input:       `{"weights": {}, "selected_candidate": "one", "reasoning": "ok"}`,
			wantErr:     true,
			errContains: "selected_candidate is not an integer",
		},
		{
			name:        "reasoning is not a string",
			input:       `{"weights": {}, "selected_candidate": 1, "reasoning": 42}`,
			wantErr:     true,
			errContains: "reasoning is not a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnalysis(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseAnalysis() expected error but got none")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("ParseAnalysis() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAnalysis() unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, got)
			}
		})
	}
}

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence without closer", "```json\n{\"a\": 1}", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripMarkdownFences(tt.input)
			if got != tt.want {
				t.Errorf("stripMarkdownFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
