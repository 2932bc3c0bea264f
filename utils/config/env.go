package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider represents a provider's configuration
type Provider struct {
	APIKey string   `yaml:"api_key"`
	Models []string `yaml:"models,omitempty"`
}

// EnvConfig represents the complete environment configuration
type EnvConfig struct {
	Providers    map[string]*Provider `yaml:"providers"`
	Server       *ServerConfig        `yaml:"server,omitempty"`
	Database     *DatabaseConfig      `yaml:"database,omitempty"`
	DefaultModel string               `yaml:"default-model,omitempty"`
}

// DatabaseConfig holds the optional Postgres diagram archive settings
type DatabaseConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

// envKeyByProvider maps provider names to the conventional OS environment
// variable holding their credential, used when the env file has no entry.
var envKeyByProvider = map[string]string{
	"googleai":  "GOOGLE_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"mistral":   "MISTRAL_API_KEY",
	"cohere":    "COHERE_API_KEY",
	"ollama":    "OLLAMA_HOST",
}

// GetEnvPath returns the environment file path from BPMN_ARCHITECT_ENV or the default
func GetEnvPath() string {
	if envPath := os.Getenv("BPMN_ARCHITECT_ENV"); envPath != "" {
		DebugLog("Using environment file from BPMN_ARCHITECT_ENV: %s", envPath)
		return envPath
	}
	DebugLog("Using default environment file: .bpmn-architect.env")
	return ".bpmn-architect.env"
}

// LoadEnvConfig loads the environment configuration from the env file
func LoadEnvConfig(path string) (*EnvConfig, error) {
	DebugLog("Attempting to load environment configuration from: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		DebugLog("Error reading environment file: %v", err)
		return nil, fmt.Errorf("error reading env file: %w", err)
	}

	var config EnvConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		DebugLog("Error parsing environment file: %v", err)
		return nil, fmt.Errorf("error parsing env file: %w", err)
	}

	DebugLog("Successfully loaded environment configuration")
	return &config, nil
}

// LoadEnvConfigOrDefault loads the env file, falling back to an empty
// configuration when the file does not exist. Credentials then come from
// OS environment variables alone.
func LoadEnvConfigOrDefault(path string) *EnvConfig {
	config, err := LoadEnvConfig(path)
	if err != nil {
		DebugLog("No usable env file (%v), using OS environment only", err)
		return &EnvConfig{}
	}
	return config
}

// SaveEnvConfig saves the environment configuration to the env file
func SaveEnvConfig(path string, config *EnvConfig) error {
	DebugLog("Attempting to save environment configuration to: %s", path)

	data, err := yaml.Marshal(config)
	if err != nil {
		DebugLog("Error marshaling environment config: %v", err)
		return fmt.Errorf("error marshaling env config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		DebugLog("Error writing environment file: %v", err)
		return fmt.Errorf("error writing env file: %w", err)
	}

	DebugLog("Successfully saved environment configuration")
	return nil
}

// GetProviderConfig retrieves configuration for a specific provider
func (c *EnvConfig) GetProviderConfig(providerName string) (*Provider, error) {
	provider, exists := c.Providers[providerName]
	if !exists {
		return nil, fmt.Errorf("provider %s not found in configuration", providerName)
	}
	if provider == nil {
		return nil, fmt.Errorf("provider %s configuration is nil", providerName)
	}
	return provider, nil
}

// AddProvider adds or updates a provider configuration
func (c *EnvConfig) AddProvider(name string, provider Provider) {
	if c.Providers == nil {
		c.Providers = make(map[string]*Provider)
	}
	providerCopy := provider
	c.Providers[name] = &providerCopy
}

// UpdateAPIKey updates the API key for a specific provider
func (c *EnvConfig) UpdateAPIKey(providerName, apiKey string) error {
	provider, exists := c.Providers[providerName]
	if !exists {
		c.AddProvider(providerName, Provider{APIKey: apiKey})
		return nil
	}
	provider.APIKey = apiKey
	return nil
}

// ProviderAPIKey returns the credential for a provider: the env file entry
// when present, otherwise the conventional OS environment variable. An empty
// string means the provider is not configured; this is never an error.
func (c *EnvConfig) ProviderAPIKey(providerName string) string {
	if c != nil && c.Providers != nil {
		if provider, exists := c.Providers[providerName]; exists && provider != nil && provider.APIKey != "" {
			return provider.APIKey
		}
	}
	if envKey, ok := envKeyByProvider[providerName]; ok {
		return os.Getenv(envKey)
	}
	return ""
}

// HasVertexConfig reports whether Vertex AI is configured. Vertex needs a
// project and a location rather than a single API key.
func (c *EnvConfig) HasVertexConfig() bool {
	project, location := c.VertexConfig()
	return project != "" && location != ""
}

// VertexConfig returns the Vertex AI project and location from the env file
// provider entry ("project/location" in api_key) or the OS environment.
func (c *EnvConfig) VertexConfig() (project, location string) {
	if c != nil && c.Providers != nil {
		if provider, exists := c.Providers["vertexai"]; exists && provider != nil {
			if idx := strings.Index(provider.APIKey, "/"); idx > 0 && idx < len(provider.APIKey)-1 {
				return provider.APIKey[:idx], provider.APIKey[idx+1:]
			}
		}
	}
	return os.Getenv("VERTEX_AI_PROJECT"), os.Getenv("VERTEX_AI_LOCATION")
}

// GetServerConfig returns the server configuration, applying defaults for
// anything the env file leaves unset.
func (c *EnvConfig) GetServerConfig() *ServerConfig {
	server := c.Server
	if server == nil {
		server = &ServerConfig{}
	}
	if server.Port == 0 {
		server.Port = 8080
	}
	if server.DataDir == "" {
		server.DataDir = "data"
	}
	return server
}

// GetDatabaseConfig returns the database configuration or nil when the
// Postgres archive is not enabled.
func (c *EnvConfig) GetDatabaseConfig() *DatabaseConfig {
	if c.Database == nil || !c.Database.Enabled {
		return nil
	}
	return c.Database
}
