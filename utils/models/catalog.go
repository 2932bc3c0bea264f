package models

import (
	"fmt"
	"os"
	"strings"

	"github.com/processforge/bpmn-architect/utils/config"
)

// ModelStatus describes whether a catalog model can actually be called
type ModelStatus string

const (
	StatusAvailable       ModelStatus = "available"
	StatusConfiguredNoKey ModelStatus = "configured_no_key"
	StatusNotConfigured   ModelStatus = "not_configured"
)

// ModelDescriptor describes one model offered by a provider. The ID is in
// "provider/model-name" form and is what pipeline calls carry around.
type ModelDescriptor struct {
	ID          string      `json:"id"`
	Provider    string      `json:"provider"`
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`
	Status      ModelStatus `json:"status"`
	Description string      `json:"description,omitempty"`
	Type        string      `json:"type,omitempty"`
}

// HardcodedDefaultModel is the last-resort default when nothing is configured
const HardcodedDefaultModel = "googleai/gemini-2.0-flash"

type catalogEntry struct {
	name        string
	description string
}

// catalogByProvider enumerates the models surfaced per provider. This is a
// static policy table, not a live listing of each vendor's API.
var catalogByProvider = []struct {
	provider string
	display  string
	entries  []catalogEntry
}{
	{
		provider: "googleai",
		display:  "Google AI",
		entries: []catalogEntry{
			{"gemini-2.0-flash", "Fast, efficient model for most tasks"},
			{"gemini-2.0-pro", "Advanced model with higher quality"},
			{"gemini-1.5-pro", "Previous generation pro model"},
			{"gemini-1.5-flash", "Previous generation fast model"},
		},
	},
	{
		provider: "vertexai",
		display:  "Vertex AI",
		entries: []catalogEntry{
			{"gemini-2.0-pro", "Google Cloud Vertex AI hosted"},
			{"gemini-1.5-pro", "Previous generation Vertex AI model"},
		},
	},
	{
		provider: "openai",
		display:  "OpenAI",
		entries: []catalogEntry{
			{"gpt-4o", "Latest multimodal model with optimal performance"},
			{"gpt-4-turbo", "Fast version of GPT-4"},
			{"gpt-3.5-turbo", "Efficient model with good performance"},
		},
	},
	{
		provider: "anthropic",
		display:  "Anthropic",
		entries: []catalogEntry{
			{"claude-3-opus", "Most powerful Claude model"},
			{"claude-3-sonnet", "Balanced performance and efficiency"},
			{"claude-3-haiku", "Fast, efficient Claude model"},
		},
	},
	{
		provider: "mistral",
		display:  "Mistral AI",
		entries: []catalogEntry{
			{"mistral-large-latest", "Most powerful Mistral model"},
			{"mistral-medium-latest", "Balanced performance and efficiency"},
			{"mistral-small-latest", "Fast, efficient Mistral model"},
			{"open-mistral-7b", "Open source 7B parameter model"},
		},
	},
	{
		provider: "cohere",
		display:  "Cohere",
		entries: []catalogEntry{
			{"command-r", "Standard Command model"},
			{"command-r-plus", "Enhanced Command model with better performance"},
		},
	},
	{
		provider: "ollama",
		display:  "Ollama",
		entries: []catalogEntry{
			{"llama3", "Meta's Llama 3 model running locally"},
			{"mistral", "Mistral model running locally"},
			{"gemma", "Google's Gemma model running locally"},
			{"codellama", "Specialized code generation model"},
		},
	},
}

// FallbackModels is what callers should fall back to when enumeration yields
// nothing usable.
func FallbackModels() []ModelDescriptor {
	return []ModelDescriptor{
		{
			ID:          "googleai/gemini-2.0-flash",
			Provider:    "googleai",
			Name:        "gemini-2.0-flash",
			DisplayName: "Gemini 2.0 Flash",
			Status:      StatusNotConfigured,
			Type:        "chat",
		},
		{
			ID:          "openai/gpt-3.5-turbo",
			Provider:    "openai",
			Name:        "gpt-3.5-turbo",
			DisplayName: "GPT-3.5 Turbo",
			Status:      StatusNotConfigured,
			Type:        "chat",
		},
	}
}

// FormatDisplayName turns a kebab-case model name into a readable title
func FormatDisplayName(name string) string {
	if name == "" {
		return name
	}
	if !strings.Contains(name, "-") {
		return strings.ToUpper(name[:1]) + name[1:]
	}
	parts := strings.Split(name, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

// providerConfigured reports whether a provider's credential is present
func providerConfigured(env *config.EnvConfig, provider string) bool {
	if provider == "vertexai" {
		return env.HasVertexConfig()
	}
	if provider == "ollama" {
		return env.ProviderAPIKey("ollama") != ""
	}
	return env.ProviderAPIKey(provider) != ""
}

// ListAvailableModels enumerates every catalog model with its status derived
// from credential presence. Enumeration never fails; callers treat an empty
// slice as "use FallbackModels".
func ListAvailableModels(env *config.EnvConfig) []ModelDescriptor {
	if env == nil {
		env = &config.EnvConfig{}
	}

	var descriptors []ModelDescriptor
	for _, group := range catalogByProvider {
		status := StatusConfiguredNoKey
		if providerConfigured(env, group.provider) {
			status = StatusAvailable
		}
		for _, entry := range group.entries {
			descriptors = append(descriptors, ModelDescriptor{
				ID:          group.provider + "/" + entry.name,
				Provider:    group.provider,
				Name:        entry.name,
				DisplayName: FormatDisplayName(entry.name),
				Status:      status,
				Description: entry.description,
				Type:        "chat",
			})
		}
	}

	config.DebugLog("[Catalog] Enumerated %d models", len(descriptors))
	return descriptors
}

// GroupModelsByProvider organizes catalog output for display surfaces
func GroupModelsByProvider(descriptors []ModelDescriptor) map[string][]ModelDescriptor {
	grouped := make(map[string][]ModelDescriptor)
	for _, d := range descriptors {
		grouped[d.Provider] = append(grouped[d.Provider], d)
	}
	return grouped
}

// DefaultModel resolves the model used when a call carries no explicit model
// ID. The priority order is fixed; the function is total and deterministic for
// a given environment and always returns a non-empty ID.
func DefaultModel(env *config.EnvConfig) string {
	if env == nil {
		env = &config.EnvConfig{}
	}

	if env.ProviderAPIKey("openai") != "" {
		return "openai/gpt-3.5-turbo"
	}
	if env.ProviderAPIKey("googleai") != "" {
		return "googleai/gemini-2.0-flash"
	}
	if env.ProviderAPIKey("mistral") != "" {
		return "mistral/mistral-small-latest"
	}
	if env.ProviderAPIKey("cohere") != "" {
		return "cohere/command-r"
	}
	if env.DefaultModel != "" {
		return env.DefaultModel
	}
	if override := os.Getenv("DEFAULT_MODEL"); override != "" {
		return override
	}
	return HardcodedDefaultModel
}

// ResolveModel turns a model ID ("provider/model-name", or a bare model name,
// or empty for the default) into a configured provider and bare model name.
func ResolveModel(env *config.EnvConfig, modelID string) (Provider, string, error) {
	if env == nil {
		env = &config.EnvConfig{}
	}
	if modelID == "" {
		modelID = DefaultModel(env)
		config.DebugLog("[Catalog] No model requested, using default: %s", modelID)
	}

	var provider Provider
	var providerName, modelName string

	if idx := strings.Index(modelID, "/"); idx > 0 {
		providerName = modelID[:idx]
		modelName = modelID[idx+1:]
		provider = GetProviderByName(providerName)
		if provider == nil {
			return nil, "", fmt.Errorf("unknown provider %q in model id %q", providerName, modelID)
		}
	} else {
		modelName = modelID
		provider = DetectProvider(modelName)
		if provider == nil {
			return nil, "", fmt.Errorf("no provider supports model %q", modelID)
		}
		providerName = provider.Name()
	}

	if modelName == "" {
		return nil, "", fmt.Errorf("model id %q has no model name", modelID)
	}

	credential := env.ProviderAPIKey(providerName)
	if vertex, ok := provider.(*VertexAIProvider); ok {
		vertex.SetProject(env.VertexConfig())
		// The vertexai env entry carries project/location, not a token; the
		// access token always comes from the environment
		credential = ""
	}

	if err := provider.Configure(credential); err != nil {
		return nil, "", fmt.Errorf("provider %s not configured: %v", providerName, err)
	}

	return provider, modelName, nil
}
