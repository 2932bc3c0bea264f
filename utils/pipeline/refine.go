package pipeline

import (
	"fmt"
	"strings"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/prompts"
)

const rawInputPlaceholder = "{{{rawUserInput}}}"

// Refine turns a raw process description into structured modeling
// instructions. Empty input is rejected before any model call is made. The
// stage makes exactly one call; on failure the error string is surfaced to
// the user verbatim.
func (p *Pipeline) Refine(in RefineInput) RefineResult {
	if strings.TrimSpace(in.RawUserInput) == "" {
		return RefineResult{Error: "The process description cannot be empty."}
	}

	template := p.store.Get(prompts.Refinement)
	prompt := prompts.Fill(template, map[string]string{
		"rawUserInput": in.RawUserInput,
	})
	if !strings.Contains(template, rawInputPlaceholder) {
		// Custom template without a placeholder: append the input so the
		// model still sees it
		prompt = fmt.Sprintf("%s\n\nRaw process description:\n```\n%s\n```", prompt, in.RawUserInput)
	}

	response, err := p.invoker.Invoke(in.ModelID, refinementTemperature, prompt)
	if err != nil {
		config.DebugLog("[Pipeline] Refinement call failed: %v", err)
		return RefineResult{Error: fmt.Sprintf("Refining the instructions failed: %v", err)}
	}

	refined := strings.TrimSpace(stripFences(response))
	if refined == "" {
		return RefineResult{Error: "The model did not return usable refined instructions."}
	}

	return RefineResult{RefinedInstructions: refined}
}
