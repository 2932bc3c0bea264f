package models

// ModelConfig represents configuration options for model calls
type ModelConfig struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// DefaultModelConfig returns the baseline call configuration providers start with.
// Pipeline stages override the temperature per call.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Temperature: 0.7,
		MaxTokens:   4000,
		TopP:        1.0,
	}
}

// Provider represents a model provider (e.g., Anthropic, OpenAI)
type Provider interface {
	Name() string
	SupportsModel(modelName string) bool
	SendPrompt(modelName string, prompt string) (string, error)
	Configure(apiKey string) error
	SetConfig(config ModelConfig)
	GetConfig() ModelConfig
	SetVerbose(verbose bool)
}

// DetectProvider determines the appropriate provider based on a bare model name
// (no provider prefix), using the registry's prefix tables.
func DetectProvider(modelName string) Provider {
	return registry.FindProvider(modelName)
}
