package pipeline

// Run drives one complete turn: refine, wait for confirmation, generate,
// validate, and optionally correct once. The confirm callback is the boundary
// where the user accepts, edits, or cancels the refined instructions before
// the second model call is spent; a nil callback accepts them as-is.
//
// Stages are strictly sequential and each is attempted exactly once. The
// correction pass only runs when AutoCorrect is set, the verdict is invalid,
// and at least one issue was reported.
func (p *Pipeline) Run(in RunInput, confirm ConfirmFunc) RunResult {
	refineResult := p.Refine(RefineInput{RawUserInput: in.RawUserInput, ModelID: in.ModelID})
	if refineResult.Error != "" {
		return RunResult{Error: refineResult.Error}
	}

	refined := refineResult.RefinedInstructions
	if confirm != nil {
		confirmed, ok := confirm(refined)
		if !ok {
			return RunResult{RefinedInstructions: refined, Cancelled: true}
		}
		if confirmed != "" {
			refined = confirmed
		}
	}

	generateResult := p.GenerateAndValidate(GenerateInput{UserInput: refined, ModelID: in.ModelID})
	if generateResult.Error != "" {
		return RunResult{RefinedInstructions: refined, Error: generateResult.Error}
	}

	result := RunResult{
		RefinedInstructions: refined,
		BpmnXml:             generateResult.BpmnXml,
		Validation:          generateResult.Validation,
	}

	if !in.AutoCorrect || generateResult.Validation.IsValid || len(generateResult.Validation.Issues) == 0 {
		return result
	}

	correctResult := p.CorrectAndRevalidate(CorrectInput{
		OriginalBpmnXml:  generateResult.BpmnXml,
		ValidationIssues: generateResult.Validation.Issues,
		ModelID:          in.ModelID,
	})
	if correctResult.Error != "" {
		// The user still has the generated XML; the correction failure is
		// reported alongside it rather than replacing it
		result.Error = correctResult.Error
		return result
	}

	result.CorrectedBpmnXml = correctResult.CorrectedBpmnXml
	result.Revalidation = correctResult.Validation
	return result
}
