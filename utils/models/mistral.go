package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const mistralBaseURL = "https://api.mistral.ai/v1"

// MistralProvider handles Mistral AI family of models through their
// OpenAI-compatible chat completions endpoint
type MistralProvider struct {
	apiKey  string
	config  ModelConfig
	verbose bool
}

func init() {
	RegisterProvider("mistral", NewProviderFactory(
		func() Provider { return NewMistralProvider() },
		ProviderMetadata{
			Name:          "mistral",
			DisplayName:   "Mistral AI",
			Description:   "Mistral hosted models",
			ModelPrefixes: []string{"mistral-", "open-mistral", "open-mixtral", "codestral"},
			Priority:      30,
		},
	))
}

// NewMistralProvider creates a new Mistral provider instance
func NewMistralProvider() *MistralProvider {
	return &MistralProvider{config: DefaultModelConfig()}
}

// Name returns the provider name
func (m *MistralProvider) Name() string {
	return "mistral"
}

// debugf prints debug information if verbose mode is enabled
func (m *MistralProvider) debugf(format string, args ...interface{}) {
	if m.verbose {
		fmt.Printf("[DEBUG][Mistral] "+format+"\n", args...)
	}
}

// SupportsModel checks if the given model name is supported by Mistral
func (m *MistralProvider) SupportsModel(modelName string) bool {
	modelName = strings.ToLower(modelName)

	validPrefixes := []string{
		"mistral-",
		"open-mistral",
		"open-mixtral",
		"codestral",
	}

	for _, prefix := range validPrefixes {
		if strings.HasPrefix(modelName, prefix) {
			return true
		}
	}

	return false
}

// Configure sets up the provider with necessary credentials
func (m *MistralProvider) Configure(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key is required for Mistral provider")
	}
	m.apiKey = apiKey
	m.debugf("API key configured successfully")
	return nil
}

// SendPrompt sends a prompt to the specified model and returns the response
func (m *MistralProvider) SendPrompt(modelName string, prompt string) (string, error) {
	m.debugf("Preparing to send prompt to model: %s", modelName)
	m.debugf("Prompt length: %d characters", len(prompt))

	if m.apiKey == "" {
		return "", fmt.Errorf("Mistral provider not configured: missing API key")
	}

	if !m.SupportsModel(modelName) {
		return "", fmt.Errorf("invalid Mistral model: %s", modelName)
	}

	clientConfig := openai.DefaultConfig(m.apiKey)
	clientConfig.BaseURL = mistralBaseURL
	client := openai.NewClientWithConfig(clientConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: modelName,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: float32(m.config.Temperature),
			MaxTokens:   m.config.MaxTokens,
			TopP:        float32(m.config.TopP),
		},
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("request to Mistral timed out")
		}
		return "", fmt.Errorf("Mistral API error: %v", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned from Mistral")
	}

	response := resp.Choices[0].Message.Content
	m.debugf("API call completed, response length: %d characters", len(response))

	return response, nil
}

// SetConfig updates the provider configuration
func (m *MistralProvider) SetConfig(config ModelConfig) {
	m.config = config
}

// GetConfig returns the current provider configuration
func (m *MistralProvider) GetConfig() ModelConfig {
	return m.config
}

// SetVerbose enables or disables verbose mode
func (m *MistralProvider) SetVerbose(verbose bool) {
	m.verbose = verbose
}
