package pipeline

import (
	"fmt"
	"strings"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/prompts"
)

const (
	originalXMLPlaceholder = "{{{originalBpmnXml}}}"
	issuesPlaceholder      = "{{{validationIssues}}}"
)

// correctXML performs the bare correction stage: one model call with the
// original XML and the issues rendered into the correction template.
func (p *Pipeline) correctXML(in CorrectInput) (string, error) {
	template := p.store.Get(prompts.Correction)
	prompt := prompts.Fill(template, map[string]string{
		"originalBpmnXml":  in.OriginalBpmnXml,
		"validationIssues": prompts.RenderIssues(in.ValidationIssues),
	})
	if !strings.Contains(template, originalXMLPlaceholder) {
		prompt = fmt.Sprintf("%s\n\nOriginal BPMN XML:\n```xml\n%s\n```", prompt, in.OriginalBpmnXml)
	}
	if !strings.Contains(template, issuesPlaceholder) {
		prompt = fmt.Sprintf("%s\n\nValidation issues to fix:\n%s", prompt, prompts.RenderIssues(in.ValidationIssues))
	}

	response, err := p.invoker.Invoke(in.ModelID, correctionTemperature, prompt)
	if err != nil {
		config.DebugLog("[Pipeline] Correction call failed: %v", err)
		return "", fmt.Errorf("correcting the BPMN XML failed: %v", err)
	}

	xml := extractXML(response)
	if xml == "" {
		return "", fmt.Errorf("the model did not return a corrected BPMN XML document")
	}

	return xml, nil
}

// CorrectAndRevalidate repairs invalid BPMN XML and re-validates the result.
// It must only be invoked after an invalid verdict with at least one issue;
// with no issues it short-circuits, returning the original XML unchanged and
// an explanatory error without any model call. A successful correction is
// always followed by exactly one re-validation pass, never a loop.
func (p *Pipeline) CorrectAndRevalidate(in CorrectInput) CorrectResult {
	if strings.TrimSpace(in.OriginalBpmnXml) == "" {
		return CorrectResult{Error: "There is no BPMN XML to correct."}
	}
	if len(in.ValidationIssues) == 0 {
		return CorrectResult{
			CorrectedBpmnXml: in.OriginalBpmnXml,
			Error:            "Correction skipped: the validation verdict listed no issues to fix.",
		}
	}

	corrected, err := p.correctXML(in)
	if err != nil {
		return CorrectResult{Error: err.Error()}
	}

	verdict := p.Validate(ValidateInput{BpmnXml: corrected, ModelID: in.ModelID})
	return CorrectResult{CorrectedBpmnXml: corrected, Validation: &verdict}
}
