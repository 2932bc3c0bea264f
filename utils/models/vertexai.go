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

// VertexAIProvider handles Gemini models served through Google Cloud Vertex AI.
// It calls the regional REST endpoint directly; the access token is expected to
// come from the environment (e.g. the output of `gcloud auth print-access-token`).
type VertexAIProvider struct {
	accessToken string
	project     string
	location    string
	config      ModelConfig
	verbose     bool
	client      *http.Client
}

func init() {
	RegisterProvider("vertexai", NewProviderFactory(
		func() Provider { return NewVertexAIProvider() },
		ProviderMetadata{
			Name:          "vertexai",
			DisplayName:   "Vertex AI",
			Description:   "Google Gemini models via Cloud Vertex AI",
			ModelPrefixes: []string{"gemini-"},
			Priority:      20,
		},
	))
}

// NewVertexAIProvider creates a new Vertex AI provider instance
func NewVertexAIProvider() *VertexAIProvider {
	return &VertexAIProvider{
		config:   DefaultModelConfig(),
		project:  os.Getenv("VERTEX_AI_PROJECT"),
		location: os.Getenv("VERTEX_AI_LOCATION"),
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// Name returns the provider name
func (v *VertexAIProvider) Name() string {
	return "vertexai"
}

// debugf prints debug information if verbose mode is enabled
func (v *VertexAIProvider) debugf(format string, args ...interface{}) {
	if v.verbose {
		fmt.Printf("[DEBUG][VertexAI] "+format+"\n", args...)
	}
}

// SupportsModel checks if the given model name is supported by Vertex AI
func (v *VertexAIProvider) SupportsModel(modelName string) bool {
	return strings.HasPrefix(strings.ToLower(modelName), "gemini-")
}

// Configure sets up the provider credentials. An empty value falls back to the
// VERTEX_AI_ACCESS_TOKEN environment variable.
func (v *VertexAIProvider) Configure(apiKey string) error {
	if apiKey == "" {
		apiKey = os.Getenv("VERTEX_AI_ACCESS_TOKEN")
	}
	if apiKey == "" {
		return fmt.Errorf("access token is required for Vertex AI provider")
	}
	v.accessToken = apiKey
	v.debugf("Access token configured successfully")
	return nil
}

// SetProject sets the Google Cloud project and location used for API calls
func (v *VertexAIProvider) SetProject(project, location string) {
	v.project = project
	v.location = location
}

type vertexContent struct {
	Role  string `json:"role,omitempty"`
	Parts []struct {
		Text string `json:"text"`
	} `json:"parts"`
}

type vertexRequest struct {
	Contents         []vertexContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		TopP            float64 `json:"topP"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type vertexResponse struct {
	Candidates []struct {
		Content vertexContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SendPrompt sends a prompt to the specified model and returns the response
func (v *VertexAIProvider) SendPrompt(modelName string, prompt string) (string, error) {
	v.debugf("Preparing to send prompt to model: %s", modelName)
	v.debugf("Prompt length: %d characters", len(prompt))

	if v.project == "" || v.location == "" {
		return "", fmt.Errorf("Vertex AI provider not configured: missing project or location")
	}
	if v.accessToken == "" {
		if err := v.Configure(""); err != nil {
			return "", fmt.Errorf("Vertex AI provider not configured: %v", err)
		}
	}

	var reqBody vertexRequest
	reqBody.Contents = []vertexContent{{
		Role: "user",
		Parts: []struct {
			Text string `json:"text"`
		}{{Text: prompt}},
	}}
	reqBody.GenerationConfig.Temperature = v.config.Temperature
	reqBody.GenerationConfig.TopP = v.config.TopP
	reqBody.GenerationConfig.MaxOutputTokens = v.config.MaxTokens

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	endpoint := fmt.Sprintf(
		"https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		v.location, v.project, v.location, modelName)

	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.accessToken)

	resp, err := v.client.Do(req)
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

	var response vertexResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %v", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}

	if len(response.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates returned from Vertex AI")
	}

	var result string
	for _, part := range response.Candidates[0].Content.Parts {
		result += part.Text
	}

	v.debugf("API call completed, response length: %d characters", len(result))

	return result, nil
}

// SetConfig updates the provider configuration
func (v *VertexAIProvider) SetConfig(config ModelConfig) {
	v.config = config
}

// GetConfig returns the current provider configuration
func (v *VertexAIProvider) GetConfig() ModelConfig {
	return v.config
}

// SetVerbose enables or disables verbose mode
func (v *VertexAIProvider) SetVerbose(verbose bool) {
	v.verbose = verbose
}
