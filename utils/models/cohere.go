package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const cohereEndpoint = "https://api.cohere.com/v2/chat"

// CohereProvider handles Cohere family of models
type CohereProvider struct {
	apiKey  string
	config  ModelConfig
	verbose bool
	client  *http.Client
}

func init() {
	RegisterProvider("cohere", NewProviderFactory(
		func() Provider { return NewCohereProvider() },
		ProviderMetadata{
			Name:          "cohere",
			DisplayName:   "Cohere",
			Description:   "Cohere Command models",
			ModelPrefixes: []string{"command"},
			Priority:      25,
		},
	))
}

// NewCohereProvider creates a new Cohere provider instance
func NewCohereProvider() *CohereProvider {
	return &CohereProvider{
		config: DefaultModelConfig(),
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// Name returns the provider name
func (c *CohereProvider) Name() string {
	return "cohere"
}

// debugf prints debug information if verbose mode is enabled
func (c *CohereProvider) debugf(format string, args ...interface{}) {
	if c.verbose {
		fmt.Printf("[DEBUG][Cohere] "+format+"\n", args...)
	}
}

// SupportsModel checks if the given model name is supported by Cohere
func (c *CohereProvider) SupportsModel(modelName string) bool {
	return strings.HasPrefix(strings.ToLower(modelName), "command")
}

// Configure sets up the provider with necessary credentials
func (c *CohereProvider) Configure(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key is required for Cohere provider")
	}
	c.apiKey = apiKey
	c.debugf("API key configured successfully")
	return nil
}

type cohereMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type cohereRequest struct {
	Model       string          `json:"model"`
	Messages    []cohereMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
	P           float64         `json:"p,omitempty"`
}

type cohereResponse struct {
	Message struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
}

// SendPrompt sends a prompt to the specified model and returns the response
func (c *CohereProvider) SendPrompt(modelName string, prompt string) (string, error) {
	c.debugf("Preparing to send prompt to model: %s", modelName)
	c.debugf("Prompt length: %d characters", len(prompt))

	if c.apiKey == "" {
		return "", fmt.Errorf("Cohere provider not configured: missing API key")
	}

	if !c.SupportsModel(modelName) {
		return "", fmt.Errorf("invalid Cohere model: %s", modelName)
	}

	reqBody := cohereRequest{
		Model: modelName,
		Messages: []cohereMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
		P:           c.config.TopP,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", cohereEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response cohereResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %v", err)
	}

	if len(response.Message.Content) == 0 {
		return "", fmt.Errorf("no response content returned from Cohere")
	}

	var result string
	for _, part := range response.Message.Content {
		result += part.Text
	}

	c.debugf("API call completed, response length: %d characters", len(result))

	return result, nil
}

// SetConfig updates the provider configuration
func (c *CohereProvider) SetConfig(config ModelConfig) {
	c.config = config
}

// GetConfig returns the current provider configuration
func (c *CohereProvider) GetConfig() ModelConfig {
	return c.config
}

// SetVerbose enables or disables verbose mode
func (c *CohereProvider) SetVerbose(verbose bool) {
	c.verbose = verbose
}
