package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/processforge/bpmn-architect/utils/guide"
	"github.com/processforge/bpmn-architect/utils/models"
	"github.com/processforge/bpmn-architect/utils/pipeline"
	"github.com/processforge/bpmn-architect/utils/prompts"
	"github.com/processforge/bpmn-architect/utils/storage"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Invalid request body: %v", err)})
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	descriptors := models.ListAvailableModels(s.envConfig)
	if len(descriptors) == 0 {
		descriptors = models.FallbackModels()
	}

	writeJSON(w, http.StatusOK, ModelsResponse{
		Success:      true,
		Models:       descriptors,
		DefaultModel: models.DefaultModel(s.envConfig),
	})
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, GuideResponse{
		Success:  true,
		Overview: guide.Overview,
		Elements: guide.Elements,
	})
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var in pipeline.RefineInput
	if !decodeBody(w, r, &in) {
		return
	}

	result := s.pipeline.Refine(in)
	if result.Error != "" {
		writeJSON(w, http.StatusOK, RefineResponse{Success: false, Error: result.Error})
		return
	}
	writeJSON(w, http.StatusOK, RefineResponse{
		Success:             true,
		RefinedInstructions: result.RefinedInstructions,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var in pipeline.GenerateInput
	if !decodeBody(w, r, &in) {
		return
	}

	result := s.pipeline.GenerateAndValidate(in)
	if result.Error != "" {
		writeJSON(w, http.StatusOK, GenerateResponse{Success: false, Error: result.Error})
		return
	}
	writeJSON(w, http.StatusOK, GenerateResponse{
		Success:    true,
		BpmnXml:    result.BpmnXml,
		Validation: result.Validation,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var in pipeline.ValidateInput
	if !decodeBody(w, r, &in) {
		return
	}

	verdict := s.pipeline.Validate(in)
	writeJSON(w, http.StatusOK, ValidateResponse{Success: true, Validation: &verdict})
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var in pipeline.CorrectInput
	if !decodeBody(w, r, &in) {
		return
	}

	result := s.pipeline.CorrectAndRevalidate(in)
	if result.Error != "" && result.Validation == nil {
		writeJSON(w, http.StatusOK, CorrectResponse{
			Success:          false,
			CorrectedBpmnXml: result.CorrectedBpmnXml,
			Error:            result.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, CorrectResponse{
		Success:          true,
		CorrectedBpmnXml: result.CorrectedBpmnXml,
		Validation:       result.Validation,
	})
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var in pipeline.RunInput
	if !decodeBody(w, r, &in) {
		return
	}

	// Non-interactive surface: the refined instructions are accepted as-is
	result := s.pipeline.Run(in, nil)
	if result.Error != "" && result.BpmnXml == "" {
		writeJSON(w, http.StatusOK, PipelineResponse{Success: false, Error: result.Error, Result: &result})
		return
	}
	writeJSON(w, http.StatusOK, PipelineResponse{Success: true, Result: &result})
}

func (s *Server) handlePrompts(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if !prompts.ValidKind(kind) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("Unknown prompt kind %q; valid kinds: generation, refinement, validation, correction", kind),
		})
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, PromptResponse{
			Success: true,
			Kind:    kind,
			Prompt:  s.promptStore.Get(prompts.Kind(kind)),
		})
	case http.MethodPut, http.MethodPost:
		var req PromptRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.promptStore.Save(prompts.Kind(kind), req.Prompt); err != nil {
			writeJSON(w, http.StatusInternalServerError, PromptResponse{
				Success: false,
				Kind:    kind,
				Error:   err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, PromptResponse{Success: true, Kind: kind})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleDiagrams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if id := r.URL.Query().Get("id"); id != "" {
			diagram, err := s.diagrams.Get(id)
			if err != nil {
				writeJSON(w, http.StatusNotFound, DiagramResponse{Success: false, Error: err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, DiagramResponse{Success: true, Diagram: diagram})
			return
		}
		diagrams, err := s.diagrams.List()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, DiagramListResponse{Success: false, Error: err.Error()})
			return
		}
		if diagrams == nil {
			diagrams = []storage.SavedDiagram{}
		}
		writeJSON(w, http.StatusOK, DiagramListResponse{Success: true, Diagrams: diagrams})
	case http.MethodPost:
		var req DiagramRequest
		if !decodeBody(w, r, &req) {
			return
		}
		diagram, err := s.diagrams.Save(req.Xml, req.Title)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, DiagramResponse{Success: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, DiagramResponse{Success: true, Diagram: diagram})
	case http.MethodPut:
		id := r.URL.Query().Get("id")
		if id == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "id query parameter is required"})
			return
		}
		var req DiagramRequest
		if !decodeBody(w, r, &req) {
			return
		}
		diagram, err := s.diagrams.Rename(id, req.Title)
		if err != nil {
			writeJSON(w, http.StatusNotFound, DiagramResponse{Success: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, DiagramResponse{Success: true, Diagram: diagram})
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "id query parameter is required"})
			return
		}
		if err := s.diagrams.Delete(id); err != nil {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, DiagramResponse{Success: true})
	default:
		methodNotAllowed(w)
	}
}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// downloadFilename derives a safe .bpmn filename from a diagram title
func downloadFilename(title string) string {
	name := unsafeFilename.ReplaceAllString(strings.TrimSpace(title), "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "diagram"
	}
	return name + ".bpmn"
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "id query parameter is required"})
		return
	}

	diagram, err := s.diagrams.Get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/bpmn+xml")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", downloadFilename(diagram.Title)))
	w.Write([]byte(diagram.XML))
}
