package server

import (
	"github.com/processforge/bpmn-architect/utils/guide"
	"github.com/processforge/bpmn-architect/utils/models"
	"github.com/processforge/bpmn-architect/utils/pipeline"
	"github.com/processforge/bpmn-architect/utils/storage"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the generic failure body
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ModelsResponse lists the model catalog and the resolved default
type ModelsResponse struct {
	Success      bool                     `json:"success"`
	Models       []models.ModelDescriptor `json:"models"`
	DefaultModel string                   `json:"defaultModel"`
	Error        string                   `json:"error,omitempty"`
}

// RefineResponse carries the refinement stage result
type RefineResponse struct {
	Success             bool   `json:"success"`
	RefinedInstructions string `json:"refinedInstructions,omitempty"`
	Error               string `json:"error,omitempty"`
}

// GenerateResponse carries generated XML plus its validation verdict
type GenerateResponse struct {
	Success    bool              `json:"success"`
	BpmnXml    string            `json:"bpmnXml,omitempty"`
	Validation *pipeline.Verdict `json:"validation,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// ValidateResponse carries a standalone validation verdict
type ValidateResponse struct {
	Success    bool              `json:"success"`
	Validation *pipeline.Verdict `json:"validation"`
}

// CorrectResponse carries corrected XML plus the re-validation verdict
type CorrectResponse struct {
	Success          bool              `json:"success"`
	CorrectedBpmnXml string            `json:"correctedBpmnXml,omitempty"`
	Validation       *pipeline.Verdict `json:"validation,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// PipelineResponse carries the outcome of a full non-interactive turn
type PipelineResponse struct {
	Success bool                `json:"success"`
	Result  *pipeline.RunResult `json:"result,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// PromptRequest is the body for saving a prompt template
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// PromptResponse carries one prompt template
type PromptResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind,omitempty"`
	Prompt  string `json:"prompt,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DiagramRequest is the body for saving a diagram
type DiagramRequest struct {
	Title string `json:"title"`
	Xml   string `json:"xml"`
}

// DiagramResponse carries one saved diagram
type DiagramResponse struct {
	Success bool                  `json:"success"`
	Diagram *storage.SavedDiagram `json:"diagram,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// DiagramListResponse lists saved diagrams, newest first
type DiagramListResponse struct {
	Success  bool                   `json:"success"`
	Diagrams []storage.SavedDiagram `json:"diagrams"`
	Error    string                 `json:"error,omitempty"`
}

// GuideResponse carries the embedded BPMN notation reference
type GuideResponse struct {
	Success  bool            `json:"success"`
	Overview string          `json:"overview"`
	Elements []guide.Element `json:"elements"`
}
