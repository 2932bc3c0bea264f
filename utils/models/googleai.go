package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GoogleAIProvider handles Google AI (Gemini) family of models
type GoogleAIProvider struct {
	apiKey  string
	config  ModelConfig
	verbose bool
}

func init() {
	RegisterProvider("googleai", NewProviderFactory(
		func() Provider { return NewGoogleAIProvider() },
		ProviderMetadata{
			Name:          "googleai",
			DisplayName:   "Google AI",
			Description:   "Google Gemini models via the Generative Language API",
			ModelPrefixes: []string{"gemini-"},
			Priority:      45,
		},
	))
}

// NewGoogleAIProvider creates a new Google AI provider instance
func NewGoogleAIProvider() *GoogleAIProvider {
	return &GoogleAIProvider{config: DefaultModelConfig()}
}

// Name returns the provider name
func (g *GoogleAIProvider) Name() string {
	return "googleai"
}

// debugf prints debug information if verbose mode is enabled
func (g *GoogleAIProvider) debugf(format string, args ...interface{}) {
	if g.verbose {
		fmt.Printf("[DEBUG][GoogleAI] "+format+"\n", args...)
	}
}

// SupportsModel checks if the given model name is supported by Google AI
func (g *GoogleAIProvider) SupportsModel(modelName string) bool {
	return strings.HasPrefix(strings.ToLower(modelName), "gemini-")
}

// Configure sets up the provider with necessary credentials
func (g *GoogleAIProvider) Configure(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key is required for Google AI provider")
	}
	g.apiKey = apiKey
	g.debugf("API key configured successfully")
	return nil
}

// SendPrompt sends a prompt to the specified model and returns the response
func (g *GoogleAIProvider) SendPrompt(modelName string, prompt string) (string, error) {
	g.debugf("Preparing to send prompt to model: %s", modelName)
	g.debugf("Prompt length: %d characters", len(prompt))

	if g.apiKey == "" {
		return "", fmt.Errorf("Google AI provider not configured: missing API key")
	}

	if !g.SupportsModel(modelName) {
		return "", fmt.Errorf("invalid Google AI model: %s", modelName)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Google AI client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.SetTemperature(float32(g.config.Temperature))
	model.SetTopP(float32(g.config.TopP))
	model.SetMaxOutputTokens(int32(g.config.MaxTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Google AI API error: %v", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates returned from Google AI")
	}

	var response string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			response += string(text)
		}
	}

	g.debugf("API call completed, response length: %d characters", len(response))

	return response, nil
}

// SetConfig updates the provider configuration
func (g *GoogleAIProvider) SetConfig(config ModelConfig) {
	g.config = config
}

// GetConfig returns the current provider configuration
func (g *GoogleAIProvider) GetConfig() ModelConfig {
	return g.config
}

// SetVerbose enables or disables verbose mode
func (g *GoogleAIProvider) SetVerbose(verbose bool) {
	g.verbose = verbose
}
