package pipeline

import (
	"fmt"
	"strings"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/prompts"
)

// failedVerdict synthesizes the negative verdict used whenever validation
// cannot produce a real one. Validation must never block the user from the
// XML they already have, so this stage converts every failure into feedback.
func failedVerdict(reason string) Verdict {
	return Verdict{
		IsValid: false,
		Issues:  []string{reason},
		Summary: "Validation failed.",
	}
}

// Validate checks BPMN XML against the validation guidelines. It never
// returns an error: an unreachable model or an unparseable response yields a
// synthesized negative verdict instead.
func (p *Pipeline) Validate(in ValidateInput) Verdict {
	if strings.TrimSpace(in.BpmnXml) == "" {
		return failedVerdict("No BPMN XML was provided to validate.")
	}

	guidelines := p.store.Get(prompts.Validation)
	prompt := fmt.Sprintf(
		"%s\n\nPlease analyze and validate the following BPMN XML content based only on the guidelines provided above:\n```xml\n%s\n```\n\nEnsure your response strictly follows the JSON format specified in the guidelines.",
		guidelines, in.BpmnXml)

	response, err := p.invoker.Invoke(in.ModelID, validationTemperature, prompt)
	if err != nil {
		config.DebugLog("[Pipeline] Validation call failed: %v", err)
		return failedVerdict(fmt.Sprintf("The model produced no validation response: %v", err))
	}

	verdict, err := decodeVerdict(response)
	if err != nil {
		config.DebugLog("[Pipeline] Validation response unparseable: %v", err)
		return failedVerdict("The model produced no usable validation response.")
	}

	return *verdict
}
