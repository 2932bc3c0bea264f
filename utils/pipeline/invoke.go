package pipeline

import (
	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/models"
)

// Invoker is the single seam between the pipeline stages and the provider
// layer: one prompt in, one response out. The model ID may be empty, meaning
// the registry default; temperature is pinned per stage.
type Invoker interface {
	Invoke(modelID string, temperature float64, prompt string) (string, error)
}

// RegistryInvoker resolves model IDs through the provider registry and issues
// the call. One resolution per invocation; no state is kept between calls.
type RegistryInvoker struct {
	env *config.EnvConfig
}

// NewRegistryInvoker creates an invoker bound to an environment configuration
func NewRegistryInvoker(env *config.EnvConfig) *RegistryInvoker {
	return &RegistryInvoker{env: env}
}

// Invoke resolves the model, pins the call temperature, and sends the prompt
func (r *RegistryInvoker) Invoke(modelID string, temperature float64, prompt string) (string, error) {
	provider, modelName, err := models.ResolveModel(r.env, modelID)
	if err != nil {
		return "", err
	}

	callConfig := provider.GetConfig()
	callConfig.Temperature = temperature
	provider.SetConfig(callConfig)
	provider.SetVerbose(config.Verbose)

	config.VerboseLog("Invoking %s model %s (temperature %.1f, prompt %d chars)",
		provider.Name(), modelName, temperature, len(prompt))

	return provider.SendPrompt(modelName, prompt)
}
