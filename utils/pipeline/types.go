package pipeline

// Stage call temperatures. Validation must not be creative; generation and
// correction stay close to deterministic; refinement keeps the provider
// default headroom for rewording.
const (
	refinementTemperature = 0.7
	generationTemperature = 0.1
	validationTemperature = 0.0
	correctionTemperature = 0.1
)

// RefineInput is the raw user turn entering the pipeline
type RefineInput struct {
	RawUserInput string `json:"rawUserInput"`
	ModelID      string `json:"modelId,omitempty"`
}

// RefineResult carries the refined instructions or a user-facing error,
// never both.
type RefineResult struct {
	RefinedInstructions string `json:"refinedInstructions,omitempty"`
	Error               string `json:"error,omitempty"`
}

// GenerateInput carries the confirmed refined instructions
type GenerateInput struct {
	UserInput string `json:"userInput"`
	ModelID   string `json:"modelId,omitempty"`
}

// GenerateResult carries the generated XML plus its immediate validation
// verdict, or a user-facing error.
type GenerateResult struct {
	BpmnXml    string   `json:"bpmnXml,omitempty"`
	Validation *Verdict `json:"validation,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// ValidateInput carries BPMN XML to be checked
type ValidateInput struct {
	BpmnXml string `json:"bpmnXml"`
	ModelID string `json:"modelId,omitempty"`
}

// Verdict is the structured result of a validation call. It is produced fresh
// on every call and never merged with earlier verdicts.
type Verdict struct {
	IsValid bool     `json:"isValid"`
	Issues  []string `json:"issues"`
	Summary string   `json:"summary,omitempty"`
}

// CorrectInput carries the invalid XML and the verdict issues driving the fix
type CorrectInput struct {
	OriginalBpmnXml  string   `json:"originalBpmnXml"`
	ValidationIssues []string `json:"validationIssues"`
	ModelID          string   `json:"modelId,omitempty"`
}

// CorrectResult carries the corrected XML and the verdict of the automatic
// re-validation pass. On the empty-issues short circuit the original XML is
// returned unchanged with an explanatory error and no verdict.
type CorrectResult struct {
	CorrectedBpmnXml string   `json:"correctedBpmnXml,omitempty"`
	Validation       *Verdict `json:"validation,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// RunInput drives a full pipeline turn
type RunInput struct {
	RawUserInput string `json:"rawUserInput"`
	ModelID      string `json:"modelId,omitempty"`
	AutoCorrect  bool   `json:"autoCorrect,omitempty"`
}

// RunResult is the complete outcome of one turn
type RunResult struct {
	RefinedInstructions string   `json:"refinedInstructions,omitempty"`
	BpmnXml             string   `json:"bpmnXml,omitempty"`
	Validation          *Verdict `json:"validation,omitempty"`
	CorrectedBpmnXml    string   `json:"correctedBpmnXml,omitempty"`
	Revalidation        *Verdict `json:"revalidation,omitempty"`
	Cancelled           bool     `json:"cancelled,omitempty"`
	Error               string   `json:"error,omitempty"`
}

// ConfirmFunc is the confirmation boundary between refinement and generation.
// It receives the refined instructions and returns the (possibly edited) text
// to generate from, or ok=false to cancel the turn.
type ConfirmFunc func(refined string) (confirmed string, ok bool)
