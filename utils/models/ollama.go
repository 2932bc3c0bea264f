package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// OllamaProvider handles locally hosted Ollama models
type OllamaProvider struct {
	host    string
	config  ModelConfig
	verbose bool
	client  *http.Client
}

func init() {
	RegisterProvider("ollama", NewProviderFactory(
		func() Provider { return NewOllamaProvider() },
		ProviderMetadata{
			Name:        "ollama",
			DisplayName: "Ollama",
			Description: "Locally hosted models via an Ollama server",
			ModelPrefixes: []string{
				"llama", "codellama", "gemma", "mistral", "mixtral",
				"phi", "qwen", "deepseek-r1",
			},
			Priority: 10,
		},
	))
}

// ollamaGenerateRequest represents the request structure for the Ollama API
type ollamaGenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// ollamaGenerateResponse represents the response structure from the Ollama API
type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaProvider creates a new Ollama provider instance
func NewOllamaProvider() *OllamaProvider {
	return &OllamaProvider{
		config: DefaultModelConfig(),
		client: &http.Client{Timeout: 300 * time.Second},
	}
}

// Name returns the provider name
func (o *OllamaProvider) Name() string {
	return "ollama"
}

// debugf prints debug information if verbose mode is enabled
func (o *OllamaProvider) debugf(format string, args ...interface{}) {
	if o.verbose {
		fmt.Printf("[DEBUG][Ollama] "+format+"\n", args...)
	}
}

// SupportsModel checks if the given model name is supported by Ollama
func (o *OllamaProvider) SupportsModel(modelName string) bool {
	modelName = strings.ToLower(modelName)

	ollamaPrefixes := []string{
		"llama",
		"codellama",
		"gemma",
		"mistral",
		"mixtral",
		"phi",
		"qwen",
		"deepseek-r1",
	}

	for _, prefix := range ollamaPrefixes {
		if strings.HasPrefix(modelName, prefix) {
			return true
		}
	}

	return false
}

// Configure sets the server address. The "API key" for Ollama is the host URL;
// an empty value falls back to OLLAMA_HOST or the default local address.
func (o *OllamaProvider) Configure(apiKey string) error {
	if apiKey != "" {
		o.host = apiKey
		return nil
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		o.host = host
		return nil
	}
	o.host = "http://localhost:11434"
	return nil
}

// SendPrompt sends a prompt to the specified model and returns the response
func (o *OllamaProvider) SendPrompt(modelName string, prompt string) (string, error) {
	o.debugf("Preparing to send prompt to model: %s", modelName)
	o.debugf("Prompt length: %d characters", len(prompt))

	if o.host == "" {
		if err := o.Configure(""); err != nil {
			return "", err
		}
	}

	reqBody := ollamaGenerateRequest{
		Model:  modelName,
		Prompt: prompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": o.config.Temperature,
			"top_p":       o.config.TopP,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	resp, err := o.client.Post(strings.TrimRight(o.host, "/")+"/api/generate",
		"application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error calling Ollama API: %v (is Ollama running?)", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response ollamaGenerateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %v", err)
	}

	if response.Response == "" {
		return "", fmt.Errorf("no response returned from Ollama")
	}

	o.debugf("API call completed, response length: %d characters", len(response.Response))

	return response.Response, nil
}

// SetConfig updates the provider configuration
func (o *OllamaProvider) SetConfig(config ModelConfig) {
	o.config = config
}

// GetConfig returns the current provider configuration
func (o *OllamaProvider) GetConfig() ModelConfig {
	return o.config
}

// SetVerbose enables or disables verbose mode
func (o *OllamaProvider) SetVerbose(verbose bool) {
	o.verbose = verbose
}
