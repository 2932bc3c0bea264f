package models

import (
	"testing"
)

func TestMistralSupportsModel(t *testing.T) {
	provider := NewMistralProvider()

	tests := []struct {
		name     string
		model    string
		expected bool
	}{
		{"mistral-large-latest", "mistral-large-latest", true},
		{"mistral-small-latest", "mistral-small-latest", true},
		{"open-mistral-7b", "open-mistral-7b", true},
		{"open-mixtral-8x7b", "open-mixtral-8x7b", true},
		{"codestral-latest", "codestral-latest", true},
		{"uppercase", "Mistral-Large-Latest", true},

		{"empty string", "", false},
		{"bare mistral is an ollama model", "mistral", false},
		{"gpt model", "gpt-4o", false},
		{"partial match", "not-mistral-large", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := provider.SupportsModel(tt.model)
			if result != tt.expected {
				t.Errorf("SupportsModel(%q) = %v, want %v", tt.model, result, tt.expected)
			}
		})
	}
}
