package pipeline

import (
	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/prompts"
)

// Pipeline sequences the refine, generate, validate, and correct stages for
// one user turn. It holds no per-turn state: every call reconstructs its
// context from its inputs, and the selected model ID is threaded explicitly
// through each stage.
type Pipeline struct {
	invoker Invoker
	store   *prompts.Store
}

// New creates a pipeline backed by the provider registry
func New(env *config.EnvConfig, store *prompts.Store) *Pipeline {
	return NewWithInvoker(NewRegistryInvoker(env), store)
}

// NewWithInvoker creates a pipeline with an explicit invoker, which is how
// tests substitute the LLM boundary.
func NewWithInvoker(invoker Invoker, store *prompts.Store) *Pipeline {
	if store == nil {
		store = prompts.NewStore("")
	}
	return &Pipeline{
		invoker: invoker,
		store:   store,
	}
}
