package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadEnvConfig(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.env")

	testConfig := &EnvConfig{
		Providers: map[string]*Provider{
			"openai": {APIKey: "sk-test"},
		},
		Server: &ServerConfig{
			Port:    9090,
			DataDir: "diagrams",
			Enabled: true,
		},
		DefaultModel: "openai/gpt-4o",
	}

	if err := SaveEnvConfig(testFile, testConfig); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadEnvConfig(testFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	provider, err := loaded.GetProviderConfig("openai")
	if err != nil {
		t.Fatalf("GetProviderConfig failed: %v", err)
	}
	if provider.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", provider.APIKey)
	}
	if loaded.Server == nil || loaded.Server.Port != 9090 {
		t.Errorf("Server = %+v", loaded.Server)
	}
	if loaded.DefaultModel != "openai/gpt-4o" {
		t.Errorf("DefaultModel = %q", loaded.DefaultModel)
	}
}

func TestLoadEnvConfigMissingFile(t *testing.T) {
	if _, err := LoadEnvConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadEnvConfigOrDefault(t *testing.T) {
	cfg := LoadEnvConfigOrDefault(filepath.Join(t.TempDir(), "missing.env"))
	if cfg == nil {
		t.Fatal("expected an empty config, got nil")
	}
	if len(cfg.Providers) != 0 {
		t.Errorf("expected no providers, got %d", len(cfg.Providers))
	}
}

func TestLoadEnvConfigMalformedYAML(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "bad.env")
	if err := os.WriteFile(testFile, []byte("providers: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEnvConfig(testFile); err == nil {
		t.Error("expected a parse error")
	}
}

func TestGetEnvPath(t *testing.T) {
	t.Setenv("BPMN_ARCHITECT_ENV", "/custom/path.env")
	if got := GetEnvPath(); got != "/custom/path.env" {
		t.Errorf("GetEnvPath() = %q", got)
	}

	t.Setenv("BPMN_ARCHITECT_ENV", "")
	if got := GetEnvPath(); got != ".bpmn-architect.env" {
		t.Errorf("GetEnvPath() = %q", got)
	}
}

func TestAddProviderAndUpdateAPIKey(t *testing.T) {
	cfg := &EnvConfig{}

	cfg.AddProvider("anthropic", Provider{APIKey: "key-1"})
	provider, err := cfg.GetProviderConfig("anthropic")
	if err != nil {
		t.Fatalf("GetProviderConfig failed: %v", err)
	}
	if provider.APIKey != "key-1" {
		t.Errorf("APIKey = %q", provider.APIKey)
	}

	if err := cfg.UpdateAPIKey("anthropic", "key-2"); err != nil {
		t.Fatalf("UpdateAPIKey failed: %v", err)
	}
	if cfg.ProviderAPIKey("anthropic") != "key-2" {
		t.Errorf("ProviderAPIKey = %q", cfg.ProviderAPIKey("anthropic"))
	}

	// Updating an unknown provider creates it
	if err := cfg.UpdateAPIKey("cohere", "key-3"); err != nil {
		t.Fatalf("UpdateAPIKey failed: %v", err)
	}
	if cfg.ProviderAPIKey("cohere") != "key-3" {
		t.Errorf("ProviderAPIKey = %q", cfg.ProviderAPIKey("cohere"))
	}
}

func TestProviderAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg := &EnvConfig{}
	if got := cfg.ProviderAPIKey("openai"); got != "from-env" {
		t.Errorf("ProviderAPIKey(openai) = %q", got)
	}
	if got := cfg.ProviderAPIKey("googleai"); got != "" {
		t.Errorf("ProviderAPIKey(googleai) = %q", got)
	}

	// The env file entry wins over the OS variable
	cfg.AddProvider("openai", Provider{APIKey: "from-file"})
	if got := cfg.ProviderAPIKey("openai"); got != "from-file" {
		t.Errorf("ProviderAPIKey(openai) = %q", got)
	}

	// Unknown providers have no env fallback
	if got := cfg.ProviderAPIKey("nosuch"); got != "" {
		t.Errorf("ProviderAPIKey(nosuch) = %q", got)
	}
}

func TestVertexConfig(t *testing.T) {
	t.Setenv("VERTEX_AI_PROJECT", "")
	t.Setenv("VERTEX_AI_LOCATION", "")

	cfg := &EnvConfig{}
	project, location := cfg.VertexConfig()
	if project != "" || location != "" {
		t.Errorf("VertexConfig() = %q, %q with nothing configured", project, location)
	}
	if cfg.HasVertexConfig() {
		t.Error("HasVertexConfig() = true with nothing configured")
	}

	// The env file provider entry carries "project/location" in api_key
	cfg.AddProvider("vertexai", Provider{APIKey: "my-project/us-central1"})
	project, location = cfg.VertexConfig()
	if project != "my-project" || location != "us-central1" {
		t.Errorf("VertexConfig() = %q, %q", project, location)
	}
	if !cfg.HasVertexConfig() {
		t.Error("HasVertexConfig() = false with a provider entry")
	}

	// A malformed entry falls back to the OS environment
	t.Setenv("VERTEX_AI_PROJECT", "env-project")
	t.Setenv("VERTEX_AI_LOCATION", "europe-west4")
	cfg.AddProvider("vertexai", Provider{APIKey: "no-location-here"})
	project, location = cfg.VertexConfig()
	if project != "env-project" || location != "europe-west4" {
		t.Errorf("VertexConfig() = %q, %q", project, location)
	}
}

func TestGetServerConfigDefaults(t *testing.T) {
	cfg := &EnvConfig{}
	server := cfg.GetServerConfig()
	if server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", server.Port)
	}
	if server.DataDir != "data" {
		t.Errorf("DataDir = %q, want data", server.DataDir)
	}

	cfg = &EnvConfig{Server: &ServerConfig{Port: 3000}}
	server = cfg.GetServerConfig()
	if server.Port != 3000 {
		t.Errorf("Port = %d, want 3000", server.Port)
	}
	if server.DataDir != "data" {
		t.Errorf("DataDir = %q, default should still apply", server.DataDir)
	}
}

func TestGetDatabaseConfig(t *testing.T) {
	cfg := &EnvConfig{}
	if cfg.GetDatabaseConfig() != nil {
		t.Error("no database block should yield nil")
	}

	cfg = &EnvConfig{Database: &DatabaseConfig{Enabled: false, DSN: "postgres://x"}}
	if cfg.GetDatabaseConfig() != nil {
		t.Error("a disabled database block should yield nil")
	}

	cfg = &EnvConfig{Database: &DatabaseConfig{Enabled: true, DSN: "postgres://x"}}
	db := cfg.GetDatabaseConfig()
	if db == nil || db.DSN != "postgres://x" {
		t.Errorf("GetDatabaseConfig = %+v", db)
	}
}
