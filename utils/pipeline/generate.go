package pipeline

import (
	"fmt"
	"strings"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/prompts"
)

// generateXML performs the bare generation stage: one model call, returning
// BPMN XML or an error. The public surface is GenerateAndValidate, which
// pairs the XML with its verdict.
func (p *Pipeline) generateXML(in GenerateInput) (string, error) {
	if strings.TrimSpace(in.UserInput) == "" {
		return "", fmt.Errorf("the refined instructions cannot be empty")
	}

	systemPrompt := p.store.Get(prompts.Generation)
	prompt := fmt.Sprintf(
		"%s\n\nRefined User Instructions:\n```\n%s\n```\n\nGenerate the BPMN 2.0 XML based on the refined user instructions above. Return only the XML document.",
		systemPrompt, in.UserInput)

	response, err := p.invoker.Invoke(in.ModelID, generationTemperature, prompt)
	if err != nil {
		config.DebugLog("[Pipeline] Generation call failed: %v", err)
		return "", fmt.Errorf("generating the BPMN XML failed: %v", err)
	}

	xml := extractXML(response)
	if xml == "" {
		return "", fmt.Errorf("the model did not return a BPMN XML document")
	}

	return xml, nil
}

// GenerateAndValidate runs the generation stage on confirmed refined
// instructions and immediately validates the result. Validation cannot fail,
// so a successful generation always returns both the XML and a verdict.
func (p *Pipeline) GenerateAndValidate(in GenerateInput) GenerateResult {
	xml, err := p.generateXML(in)
	if err != nil {
		return GenerateResult{Error: err.Error()}
	}

	verdict := p.Validate(ValidateInput{BpmnXml: xml, ModelID: in.ModelID})
	return GenerateResult{BpmnXml: xml, Validation: &verdict}
}
